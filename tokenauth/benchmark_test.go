package tokenauth

import (
	"context"
	"crypto/rand"
	"testing"
	"time"
)

func benchmarkService(b *testing.B, opts ...ConfigOption) *Service {
	b.Helper()
	secret := make([]byte, 32)
	rand.Read(secret)
	cfg, err := NewConfig(append([]ConfigOption{WithSecret(secret)}, opts...)...)
	if err != nil {
		b.Fatalf("Failed to create config: %v", err)
	}
	return NewService(cfg)
}

// BenchmarkIssue measures token issuance
func BenchmarkIssue(b *testing.B) {
	svc := benchmarkService(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Issue("u1", nil, time.Hour); err != nil {
			b.Fatalf("Issue failed: %v", err)
		}
	}
}

// BenchmarkVerify measures the full four-check verification path against the
// in-memory revocation store
func BenchmarkVerify(b *testing.B) {
	svc := benchmarkService(b, WithRevoker(NewMemoryRevoker()))
	token, err := svc.Issue("u1", map[string]interface{}{"email": "u1@example.com"}, time.Hour)
	if err != nil {
		b.Fatalf("Issue failed: %v", err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Verify(ctx, token); err != nil {
			b.Fatalf("Verify failed: %v", err)
		}
	}
}

// BenchmarkVerifyParallel exercises concurrent verification; checks on
// different requests are independent and share only the revocation store
func BenchmarkVerifyParallel(b *testing.B) {
	svc := benchmarkService(b, WithRevoker(NewMemoryRevoker()))
	token, err := svc.Issue("u1", nil, time.Hour)
	if err != nil {
		b.Fatalf("Issue failed: %v", err)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		ctx := context.Background()
		for pb.Next() {
			if _, err := svc.Verify(ctx, token); err != nil {
				b.Fatalf("Verify failed: %v", err)
			}
		}
	})
}
