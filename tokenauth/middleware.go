package tokenauth

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TokenAuth returns a Gin middleware handler gating every inbound request.
// Allow-listed paths pass through untouched. For everything else the
// credential is extracted, verified against signature, expiry and the
// revocation store, and on success stripped from the outbound request and
// replaced by the trusted identity header downstream services read without
// re-verifying. Every failure is a 401 with the same generic body.
func TokenAuth(svc *Service) gin.HandlerFunc {
	cfg := svc.Config()
	return func(c *gin.Context) {
		startTime := time.Now()
		path := c.Request.URL.Path

		if pathAllowed(path, cfg.Allowlist()) {
			c.Next()
			return
		}

		// Generate or extract request ID for correlation
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		token, err := extractToken(c.Request, cfg)
		if err != nil {
			logAuthFailure(cfg, requestID, path, token, err, time.Since(startTime))
			abortUnauthorized(c)
			return
		}

		identity, err := svc.Verify(c.Request.Context(), token)
		if err != nil {
			logAuthFailure(cfg, requestID, path, token, err, time.Since(startTime))
			abortUnauthorized(c)
			return
		}

		// The raw credential stops here; downstream only sees the trusted
		// identity header.
		stripCredential(c.Request, cfg)
		c.Request.Header.Set(cfg.IdentityHeader(), identity.Subject)
		if claim := cfg.UsernameClaim(); claim != "" {
			if username, ok := identity.Claims[claim].(string); ok {
				c.Request.Header.Set(cfg.usernameHeader, username)
			}
		}

		ctx := WithIdentity(c.Request.Context(), identity)
		ctx = WithRequestID(ctx, requestID)
		c.Request = c.Request.WithContext(ctx)

		logAuthSuccess(cfg, requestID, path, identity, token, time.Since(startTime))

		c.Next()
	}
}

// LogoutHandler returns a Gin handler that revokes the presented credential
// and clears the token cookie. Logout succeeds whether or not the token is
// already expired or revoked; only revocation store unavailability surfaces
// as an error, since silently skipping the write would leave the session live.
func LogoutHandler(svc *Service) gin.HandlerFunc {
	cfg := svc.Config()
	return func(c *gin.Context) {
		if token, err := extractToken(c.Request, cfg); err == nil {
			if err := svc.Revoke(c.Request.Context(), token); err != nil {
				var valErr *ValidationError
				if errors.As(err, &valErr) && valErr.Code == ErrStoreUnavailable {
					c.AbortWithStatusJSON(503, gin.H{"error": "service unavailable"})
					return
				}
				// A malformed or forged token carries nothing to revoke;
				// logout still reports success.
				if cfg.Logger() != nil {
					cfg.Logger().Warn("could not revoke token on logout", "reason", errorCode(err))
				}
			}
		}

		if cfg.CookieName() != "" {
			c.SetCookie(cfg.CookieName(), "", -1, "/", "", false, true)
		}

		c.JSON(200, gin.H{"success": true, "message": "Logout successful"})
	}
}

// abortUnauthorized rejects with the generic body used for every credential
// failure, so the response never distinguishes forged from expired tokens
func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(401, gin.H{"error": "unauthorized"})
}

// logAuthSuccess logs a successful authentication event
func logAuthSuccess(cfg *Config, requestID, path string, identity *Identity, token string, latency time.Duration) {
	if cfg.Logger() == nil {
		return
	}

	event := SecurityEvent{
		EventType:    "success",
		Timestamp:    time.Now(),
		RequestID:    requestID,
		UserID:       identity.Subject,
		Path:         path,
		TokenPreview: token,
		Latency:      latency,
	}

	logSecurityEvent(cfg.Logger(), event)
}

// logAuthFailure logs a failed authentication event
func logAuthFailure(cfg *Config, requestID, path, token string, err error, latency time.Duration) {
	if cfg.Logger() == nil {
		return
	}

	event := SecurityEvent{
		EventType:     "failure",
		Timestamp:     time.Now(),
		RequestID:     requestID,
		Path:          path,
		FailureReason: errorCode(err),
		TokenPreview:  token,
		Latency:       latency,
	}

	logSecurityEvent(cfg.Logger(), event)
}
