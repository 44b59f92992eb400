package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/Wang-tianhao/vibrant-token-gateway-go/tokenauth"
)

func main() {
	var (
		secret  = flag.String("secret", "your-256-bit-secret-key-min-32-bytes-here-for-demo!", "Secret key (minimum 32 bytes)")
		subject = flag.String("sub", "user123", "Subject (user ID)")
		email   = flag.String("email", "user@example.com", "Email address")
		role    = flag.String("role", "user", "User role")
		issuer  = flag.String("iss", "gateway", "Issuer")
		hours   = flag.Int("hours", 1, "Token validity in hours")
	)

	flag.Parse()

	cfg, err := tokenauth.NewConfig(
		tokenauth.WithSecret([]byte(*secret)),
		tokenauth.WithIssuer(*issuer),
	)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	svc := tokenauth.NewService(cfg)
	ttl := time.Duration(*hours) * time.Hour
	token, err := svc.Issue(*subject, map[string]interface{}{
		"email": *email,
		"role":  *role,
	}, ttl)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	fmt.Println("\n=== Token Generated ===")
	fmt.Printf("\nToken: %s\n\n", token)
	fmt.Println("Claims:")
	fmt.Printf("  Subject: %s\n", *subject)
	fmt.Printf("  Email:   %s\n", *email)
	fmt.Printf("  Role:    %s\n", *role)
	fmt.Printf("  Expires: %s\n\n", time.Now().Add(ttl).Format(time.RFC3339))
	fmt.Println("Usage:")
	fmt.Printf("  curl -H 'Authorization: Bearer %s' http://localhost:8080/api/profile\n\n", token)
}
