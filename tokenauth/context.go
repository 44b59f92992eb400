package tokenauth

import "context"

// contextKey is an unexported type for context keys to prevent collisions
type contextKey string

const (
	identityContextKey  contextKey = "github.com/Wang-tianhao/vibrant-token-gateway-go/tokenauth:identity"
	requestIDContextKey contextKey = "github.com/Wang-tianhao/vibrant-token-gateway-go/tokenauth:request_id"
)

// WithIdentity stores a verified identity in the request context.
// The identity is immutable and should not be modified by downstream handlers.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// GetIdentity retrieves the verified identity from the request context.
// Returns nil, false if no identity is present or it has the wrong type.
// Always check the ok return value before using the identity.
func GetIdentity(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*Identity)
	return identity, ok
}

// MustGetIdentity retrieves the identity from context and panics if not present.
// Use only when you're certain verification already ran (e.g., behind the middleware).
func MustGetIdentity(ctx context.Context) *Identity {
	identity, ok := GetIdentity(ctx)
	if !ok {
		panic("tokenauth: identity not found in context")
	}
	return identity
}

// WithRequestID stores a request ID in context for correlation
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey).(string)
	return id, ok
}
