package tokenauth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultKeyPrefix namespaces revocation records in a shared Redis instance
const defaultKeyPrefix = "token:blacklist:"

// RedisRevoker stores revocation records in Redis using SET-with-TTL and
// EXISTS. Redis expires each record on its own, so a logout for a token with
// N seconds of remaining life costs exactly one key for N seconds.
type RedisRevoker struct {
	client redis.UniversalClient
	prefix string
}

// RedisRevokerOption configures a RedisRevoker
type RedisRevokerOption func(*RedisRevoker)

// WithKeyPrefix overrides the Redis key prefix for revocation records
func WithKeyPrefix(prefix string) RedisRevokerOption {
	return func(r *RedisRevoker) {
		r.prefix = prefix
	}
}

// NewRedisRevoker creates a Redis-backed revocation store
func NewRedisRevoker(client redis.UniversalClient, opts ...RedisRevokerOption) *RedisRevoker {
	r := &RedisRevoker{
		client: client,
		prefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RedisRevoker) key(tokenID string) string {
	return r.prefix + tokenID
}

// MarkRevoked writes a revocation record that self-expires after ttl
func (r *RedisRevoker) MarkRevoked(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, r.key(tokenID), "1", ttl).Err()
}

// IsRevoked reports whether an unexpired revocation record exists
func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
