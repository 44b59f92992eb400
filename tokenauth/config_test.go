package tokenauth

import (
	"crypto/rand"
	"testing"
	"time"
)

// TestNewConfigRequiresSecret tests that a secret must be configured
func TestNewConfigRequiresSecret(t *testing.T) {
	_, err := NewConfig()
	expectCode(t, err, ErrConfigError)
}

// TestNewConfigOptionErrors tests option validation
func TestNewConfigOptionErrors(t *testing.T) {
	secret := make([]byte, 32)
	rand.Read(secret)

	tests := []struct {
		name string
		opts []ConfigOption
	}{
		{
			name: "short secret",
			opts: []ConfigOption{WithSecret([]byte("too-short"))},
		},
		{
			name: "negative clock skew",
			opts: []ConfigOption{WithSecret(secret), WithClockSkew(-time.Second)},
		},
		{
			name: "zero token TTL",
			opts: []ConfigOption{WithSecret(secret), WithTokenTTL(0)},
		},
		{
			name: "negative token TTL",
			opts: []ConfigOption{WithSecret(secret), WithTokenTTL(-time.Minute)},
		},
		{
			name: "nil revoker",
			opts: []ConfigOption{WithSecret(secret), WithRevoker(nil)},
		},
		{
			name: "negative store retries",
			opts: []ConfigOption{WithSecret(secret), WithStoreRetries(-1)},
		},
		{
			name: "unknown revocation policy",
			opts: []ConfigOption{WithSecret(secret), WithRevocationPolicy(RevocationPolicy(42))},
		},
		{
			name: "empty identity header",
			opts: []ConfigOption{WithSecret(secret), WithIdentityHeader("")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.opts...)
			expectCode(t, err, ErrConfigError)
		})
	}
}

// TestNewConfigDefaults tests the documented defaults
func TestNewConfigDefaults(t *testing.T) {
	secret := make([]byte, 32)
	rand.Read(secret)

	cfg, err := NewConfig(WithSecret(secret))
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	if cfg.TokenTTL() != time.Hour {
		t.Errorf("Expected default TTL 1h, got %v", cfg.TokenTTL())
	}
	if cfg.ClockSkewLeeway() != 60*time.Second {
		t.Errorf("Expected default clock skew 60s, got %v", cfg.ClockSkewLeeway())
	}
	if cfg.IdentityHeader() != "X-User-Id" {
		t.Errorf("Expected default identity header X-User-Id, got %s", cfg.IdentityHeader())
	}
	if cfg.RevocationPolicy() != FailClosed {
		t.Errorf("Expected default policy FailClosed, got %v", cfg.RevocationPolicy())
	}
	if cfg.StoreRetries() != 2 {
		t.Errorf("Expected default store retries 2, got %d", cfg.StoreRetries())
	}
	if cfg.CookieName() != "" {
		t.Errorf("Expected no default cookie, got %s", cfg.CookieName())
	}
	if _, ok := cfg.revoker.(NoopRevoker); !ok {
		t.Errorf("Expected default NoopRevoker, got %T", cfg.revoker)
	}
}

// TestNewConfigOptions tests that options land in the config
func TestNewConfigOptions(t *testing.T) {
	secret := make([]byte, 32)
	rand.Read(secret)
	revoker := NewMemoryRevoker()

	cfg, err := NewConfig(
		WithSecret(secret),
		WithIssuer("gateway"),
		WithTokenTTL(30*time.Minute),
		WithClockSkew(5*time.Second),
		WithCookie("auth_token"),
		WithAllowlist("/auth/login", "/health"),
		WithIdentityHeader("X-Subject"),
		WithUsernameClaim("email"),
		WithRevoker(revoker),
		WithRevocationPolicy(FailOpen),
		WithStoreRetries(4),
	)
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	if cfg.Issuer() != "gateway" {
		t.Errorf("Expected issuer gateway, got %s", cfg.Issuer())
	}
	if cfg.TokenTTL() != 30*time.Minute {
		t.Errorf("Expected TTL 30m, got %v", cfg.TokenTTL())
	}
	if cfg.ClockSkewLeeway() != 5*time.Second {
		t.Errorf("Expected clock skew 5s, got %v", cfg.ClockSkewLeeway())
	}
	if cfg.CookieName() != "auth_token" {
		t.Errorf("Expected cookie auth_token, got %s", cfg.CookieName())
	}
	if len(cfg.Allowlist()) != 2 {
		t.Errorf("Expected 2 allow-list entries, got %d", len(cfg.Allowlist()))
	}
	if cfg.IdentityHeader() != "X-Subject" {
		t.Errorf("Expected identity header X-Subject, got %s", cfg.IdentityHeader())
	}
	if cfg.UsernameClaim() != "email" {
		t.Errorf("Expected username claim email, got %s", cfg.UsernameClaim())
	}
	if cfg.RevocationPolicy() != FailOpen {
		t.Errorf("Expected FailOpen, got %v", cfg.RevocationPolicy())
	}
	if cfg.StoreRetries() != 4 {
		t.Errorf("Expected 4 retries, got %d", cfg.StoreRetries())
	}
}
