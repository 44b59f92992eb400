package tokenauth

import (
	"fmt"
	"log/slog"
	"time"
)

// RevocationPolicy decides what happens when the revocation store cannot be
// reached after all retries.
type RevocationPolicy int

const (
	// FailClosed rejects the request when the store is unavailable. This is
	// the default: the denylist exists to enforce logout, and skipping it
	// silently would re-admit revoked sessions.
	FailClosed RevocationPolicy = iota

	// FailOpen accepts the request with a logged warning when the store is
	// unavailable, prioritizing availability over revocation enforcement.
	FailOpen
)

const (
	defaultTokenTTL        = time.Hour
	defaultClockSkewLeeway = 60 * time.Second
	defaultIdentityHeader  = "X-User-Id"
	defaultUsernameHeader  = "X-Username"
	defaultStoreRetries    = 2
)

// Config holds immutable configuration for token issuance and validation.
// Build it once at process start with NewConfig and share it; nothing mutates
// it afterwards.
type Config struct {
	secret           []byte
	issuer           string
	tokenTTL         time.Duration
	clockSkewLeeway  time.Duration
	cookieName       string
	allowlist        []string
	identityHeader   string
	usernameHeader   string
	usernameClaim    string
	revoker          Revoker
	revocationPolicy RevocationPolicy
	storeRetries     int
	logger           *slog.Logger
}

// ConfigOption is a functional option for configuring the subsystem
type ConfigOption func(*Config) error

// NewConfig creates a new immutable configuration with the given options
func NewConfig(opts ...ConfigOption) (*Config, error) {
	cfg := &Config{
		tokenTTL:         defaultTokenTTL,
		clockSkewLeeway:  defaultClockSkewLeeway,
		identityHeader:   defaultIdentityHeader,
		usernameHeader:   defaultUsernameHeader,
		revoker:          NoopRevoker{},
		revocationPolicy: FailClosed,
		storeRetries:     defaultStoreRetries,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, NewValidationError(ErrConfigError, fmt.Sprintf("configuration error: %v", err), err)
		}
	}

	if len(cfg.secret) == 0 {
		return nil, NewValidationError(ErrConfigError, "a signing secret must be configured (use WithSecret)", nil)
	}

	return cfg, nil
}

// WithSecret configures the shared HMAC-SHA256 signing secret
func WithSecret(secret []byte) ConfigOption {
	return func(c *Config) error {
		if len(secret) < 32 {
			return fmt.Errorf("secret must be at least 32 bytes (256 bits), got %d bytes", len(secret))
		}
		c.secret = secret
		return nil
	}
}

// WithIssuer sets the iss claim stamped into issued tokens
func WithIssuer(issuer string) ConfigOption {
	return func(c *Config) error {
		c.issuer = issuer
		return nil
	}
}

// WithTokenTTL sets the default lifetime for issued tokens
func WithTokenTTL(ttl time.Duration) ConfigOption {
	return func(c *Config) error {
		if ttl <= 0 {
			return fmt.Errorf("token TTL must be positive, got %v", ttl)
		}
		c.tokenTTL = ttl
		return nil
	}
}

// WithClockSkew sets the clock skew tolerance for expiry validation
func WithClockSkew(skew time.Duration) ConfigOption {
	return func(c *Config) error {
		if skew < 0 {
			return fmt.Errorf("clock skew must be non-negative, got %v", skew)
		}
		c.clockSkewLeeway = skew
		return nil
	}
}

// WithCookie enables token extraction from a cookie with the given name,
// as a fallback when the Authorization header is absent
func WithCookie(cookieName string) ConfigOption {
	return func(c *Config) error {
		c.cookieName = cookieName
		return nil
	}
}

// WithAllowlist sets the public path prefixes that bypass authentication.
// Entries may carry a trailing "*" or "**" wildcard; matching is by prefix.
func WithAllowlist(paths ...string) ConfigOption {
	return func(c *Config) error {
		c.allowlist = append(c.allowlist, paths...)
		return nil
	}
}

// WithIdentityHeader overrides the trusted header carrying the verified
// subject to downstream services (default "X-User-Id")
func WithIdentityHeader(name string) ConfigOption {
	return func(c *Config) error {
		if name == "" {
			return fmt.Errorf("identity header name cannot be empty")
		}
		c.identityHeader = name
		return nil
	}
}

// WithUsernameClaim selects a custom claim to forward in the X-Username
// header alongside the subject. Empty (the default) disables the header.
func WithUsernameClaim(claim string) ConfigOption {
	return func(c *Config) error {
		c.usernameClaim = claim
		return nil
	}
}

// WithRevoker sets the revocation store consulted on every verification
func WithRevoker(revoker Revoker) ConfigOption {
	return func(c *Config) error {
		if revoker == nil {
			return fmt.Errorf("revoker cannot be nil")
		}
		c.revoker = revoker
		return nil
	}
}

// WithRevocationPolicy decides between FailClosed and FailOpen when the
// revocation store is unreachable
func WithRevocationPolicy(policy RevocationPolicy) ConfigOption {
	return func(c *Config) error {
		if policy != FailClosed && policy != FailOpen {
			return fmt.Errorf("unknown revocation policy %d", policy)
		}
		c.revocationPolicy = policy
		return nil
	}
}

// WithStoreRetries sets how many times a failed revocation store call is
// retried before the revocation policy applies
func WithStoreRetries(retries int) ConfigOption {
	return func(c *Config) error {
		if retries < 0 {
			return fmt.Errorf("store retries must be non-negative, got %d", retries)
		}
		c.storeRetries = retries
		return nil
	}
}

// WithLogger sets a structured logger for security events
func WithLogger(logger *slog.Logger) ConfigOption {
	return func(c *Config) error {
		c.logger = logger
		return nil
	}
}

// Getter methods for internal use

func (c *Config) Issuer() string {
	return c.issuer
}

func (c *Config) TokenTTL() time.Duration {
	return c.tokenTTL
}

func (c *Config) ClockSkewLeeway() time.Duration {
	return c.clockSkewLeeway
}

func (c *Config) CookieName() string {
	return c.cookieName
}

func (c *Config) Allowlist() []string {
	return c.allowlist
}

func (c *Config) IdentityHeader() string {
	return c.identityHeader
}

func (c *Config) UsernameClaim() string {
	return c.usernameClaim
}

func (c *Config) RevocationPolicy() RevocationPolicy {
	return c.revocationPolicy
}

func (c *Config) StoreRetries() int {
	return c.storeRetries
}

func (c *Config) Logger() *slog.Logger {
	return c.logger
}
