package tokenauth

import "time"

// Claims represents the decoded payload of a credential
type Claims struct {
	Subject   string                 // User identifier (sub claim)
	Issuer    string                 // Token issuer (iss claim)
	TokenID   string                 // Unique per-issuance identifier (jti claim), the revocation key
	ExpiresAt time.Time              // Expiration time (exp claim)
	IssuedAt  time.Time              // Issue time (iat claim)
	Custom    map[string]interface{} // Custom application-specific claims
}

// Identity is the per-request view of a verified credential. It is rebuilt
// from the claims on every request and never cached across requests.
type Identity struct {
	Subject string
	Claims  map[string]interface{}
}

// identityFromClaims snapshots the custom claims into an Identity
func identityFromClaims(claims *Claims) *Identity {
	snapshot := make(map[string]interface{}, len(claims.Custom))
	for key, value := range claims.Custom {
		snapshot[key] = value
	}
	return &Identity{
		Subject: claims.Subject,
		Claims:  snapshot,
	}
}
