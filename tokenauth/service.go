package tokenauth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// storeRetryBackoff is the delay between revocation store retries, multiplied
// by the attempt number
const storeRetryBackoff = 50 * time.Millisecond

// Service orchestrates credential issuance, verification and revocation.
// Verification runs four checks in a fixed, cheapest-first order: decode,
// signature, expiry, revocation. A forged or corrupted token never triggers a
// store round-trip.
type Service struct {
	cfg *Config
}

// NewService creates a token service backed by the given configuration
func NewService(cfg *Config) *Service {
	return &Service{cfg: cfg}
}

// Config returns the configuration the service was built with
func (s *Service) Config() *Config {
	return s.cfg
}

// Issue creates a signed credential for the subject with the given lifetime.
// Each issuance gets a fresh jti, never reused, even for the same subject.
// Issuance has no side effects: the revocation store is only touched at
// logout time.
func (s *Service) Issue(subject string, custom map[string]interface{}, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", NewValidationError(ErrConfigError, "subject cannot be empty", nil)
	}
	if ttl < 0 {
		return "", NewValidationError(ErrConfigError, fmt.Sprintf("ttl must be non-negative, got %v", ttl), nil)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"jti": uuid.New().String(),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if s.cfg.issuer != "" {
		claims["iss"] = s.cfg.issuer
	}
	for key, value := range custom {
		if _, reserved := claims[key]; !reserved {
			claims[key] = value
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.cfg.secret)
	if err != nil {
		return "", NewValidationError(ErrConfigError, "failed to sign token", err)
	}
	return signed, nil
}

// Verify validates a credential and returns the identity it carries. Checks
// run strictly in order: structural decode, signature, expiry, revocation.
// The one I/O wait is the revocation lookup, and it is always awaited before
// the accept decision.
func (s *Service) Verify(ctx context.Context, tokenString string) (*Identity, error) {
	raw, err := decodeSegments(tokenString)
	if err != nil {
		return nil, err
	}

	// Header algorithm must match before the signature is trusted. This
	// also rejects alg=none downgrades.
	if alg, ok := raw.header["alg"].(string); !ok || alg != signingAlgorithm {
		return nil, NewValidationError(ErrInvalidSignature, "unexpected signing algorithm", nil)
	}

	if !verifySignature(raw.signingInput, raw.signature, s.cfg.secret) {
		return nil, NewValidationError(ErrInvalidSignature, "signature verification failed", nil)
	}

	decoded, err := raw.decodeClaims()
	if err != nil {
		return nil, err
	}

	claims := mapClaims(decoded)
	if claims.Subject == "" {
		return nil, NewValidationError(ErrMalformed, "required claim missing: sub", nil)
	}
	if claims.ExpiresAt.IsZero() {
		return nil, NewValidationError(ErrMalformed, "required claim missing: exp", nil)
	}
	if claims.TokenID == "" {
		return nil, NewValidationError(ErrMalformed, "required claim missing: jti", nil)
	}

	now := time.Now()
	if now.After(claims.ExpiresAt.Add(s.cfg.clockSkewLeeway)) {
		return nil, NewValidationError(ErrExpired, fmt.Sprintf("token expired at %v", claims.ExpiresAt), nil)
	}
	nbf, err := decoded.GetNotBefore()
	if err != nil {
		return nil, NewValidationError(ErrMalformed, "nbf claim is not a valid timestamp", err)
	}
	if nbf != nil && now.Before(nbf.Time.Add(-s.cfg.clockSkewLeeway)) {
		return nil, NewValidationError(ErrExpired, fmt.Sprintf("token not valid until %v", nbf.Time), nil)
	}

	revoked, err := s.lookupRevocation(ctx, claims.TokenID)
	if err != nil {
		if s.cfg.revocationPolicy == FailOpen {
			if s.cfg.logger != nil {
				s.cfg.logger.Warn("revocation store unavailable, failing open",
					"token_id", claims.TokenID, "error", err.Error())
			}
		} else {
			return nil, NewValidationError(ErrStoreUnavailable, "revocation store unavailable", err)
		}
	} else if revoked {
		return nil, NewValidationError(ErrRevoked, "token has been revoked", nil)
	}

	return identityFromClaims(claims), nil
}

// Revoke writes a revocation record for the credential's remaining lifetime.
// The credential must be well-formed and carry a valid signature, but it need
// not be unexpired: revoking an already-expired token is a harmless no-op, so
// logout always succeeds regardless of token age. Revoking twice is equally a
// no-op.
func (s *Service) Revoke(ctx context.Context, tokenString string) error {
	raw, err := decodeSegments(tokenString)
	if err != nil {
		return err
	}

	if alg, ok := raw.header["alg"].(string); !ok || alg != signingAlgorithm {
		return NewValidationError(ErrInvalidSignature, "unexpected signing algorithm", nil)
	}
	if !verifySignature(raw.signingInput, raw.signature, s.cfg.secret) {
		return NewValidationError(ErrInvalidSignature, "signature verification failed", nil)
	}

	decoded, err := raw.decodeClaims()
	if err != nil {
		return err
	}

	claims := mapClaims(decoded)
	if claims.TokenID == "" {
		return NewValidationError(ErrMalformed, "required claim missing: jti", nil)
	}
	if claims.ExpiresAt.IsZero() {
		return NewValidationError(ErrMalformed, "required claim missing: exp", nil)
	}

	// TTL is the remaining acceptance window, not the remaining lifetime:
	// verification tolerates clock skew past exp, so the record must outlive
	// the token by the same leeway or a revoked token would validate again
	// between exp and exp+leeway. Only a token past the whole window skips
	// the write.
	ttl := time.Until(claims.ExpiresAt.Add(s.cfg.clockSkewLeeway))
	if ttl <= 0 {
		return nil
	}

	var lastErr error
	for attempt := 0; attempt <= s.cfg.storeRetries; attempt++ {
		if attempt > 0 {
			if err := sleepContext(ctx, time.Duration(attempt)*storeRetryBackoff); err != nil {
				return NewValidationError(ErrStoreUnavailable, "revocation aborted", err)
			}
		}
		if lastErr = s.cfg.revoker.MarkRevoked(ctx, claims.TokenID, ttl); lastErr == nil {
			return nil
		}
	}
	return NewValidationError(ErrStoreUnavailable, "failed to write revocation record", lastErr)
}

// lookupRevocation consults the store with bounded retries and backoff.
// Credential-level errors are never retried; only store reachability is.
func (s *Service) lookupRevocation(ctx context.Context, tokenID string) (bool, error) {
	var lastErr error
	for attempt := 0; attempt <= s.cfg.storeRetries; attempt++ {
		if attempt > 0 {
			if err := sleepContext(ctx, time.Duration(attempt)*storeRetryBackoff); err != nil {
				return false, err
			}
		}
		revoked, err := s.cfg.revoker.IsRevoked(ctx, tokenID)
		if err == nil {
			return revoked, nil
		}
		lastErr = err
	}
	return false, lastErr
}

// sleepContext waits for the duration or until the context is cancelled
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
