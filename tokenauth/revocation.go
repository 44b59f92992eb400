package tokenauth

import (
	"context"
	"sync"
	"time"
)

// Revoker records credentials invalidated before their natural expiry. The
// token ID (jti claim) is the revocation key; the TTL passed to MarkRevoked is
// the credential's remaining lifetime, so a record never outlives the token it
// shadows and the store stays bounded by the number of concurrently valid
// tokens.
//
// Implementations must provide per-key atomicity; callers do no additional
// locking.
type Revoker interface {
	// MarkRevoked records a token ID as revoked for the given duration.
	MarkRevoked(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked reports whether a token ID has been revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NoopRevoker never revokes anything. Use it when server-initiated logout is
// not required.
type NoopRevoker struct{}

// MarkRevoked does nothing and returns nil.
func (NoopRevoker) MarkRevoked(ctx context.Context, tokenID string, ttl time.Duration) error {
	return nil
}

// IsRevoked always returns false.
func (NoopRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return false, nil
}

// MemoryRevoker is an in-process revocation store with per-entry expiry.
// Suitable for tests and single-instance deployments; multi-instance gateways
// need a shared store such as RedisRevoker.
type MemoryRevoker struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

// NewMemoryRevoker creates an empty in-memory revocation store
func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{
		entries: make(map[string]time.Time),
	}
}

// MarkRevoked records the token ID until its remaining lifetime elapses
func (m *MemoryRevoker) MarkRevoked(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[tokenID] = time.Now().Add(ttl)
	return nil
}

// IsRevoked reports whether the token ID has an unexpired revocation record.
// Expired records are deleted on lookup.
func (m *MemoryRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	deadline, ok := m.entries[tokenID]
	if !ok {
		return false, nil
	}
	if time.Now().After(deadline) {
		delete(m.entries, tokenID)
		return false, nil
	}
	return true, nil
}
