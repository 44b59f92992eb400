package tokenauth

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// rawToken is the structurally decoded form of a transport string before any
// verification. The claims segment stays as raw bytes until the signature has
// been checked, so a tampered payload surfaces as a signature failure rather
// than a parse error.
type rawToken struct {
	header       map[string]interface{}
	claimsBytes  []byte
	signingInput string // header.claims, the bytes the signature covers
	signature    []byte
}

// decodeSegments splits and decodes a compact credential without verifying the
// signature. Verification is the signer's job; keeping it out of the codec lets
// the service run its checks in a fixed, cheapest-first order.
func decodeSegments(tokenString string) (*rawToken, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, NewValidationError(ErrMalformed, "token must have exactly three segments", nil)
	}

	headerBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, NewValidationError(ErrMalformed, "header segment is not valid base64url", err)
	}

	var header map[string]interface{}
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, NewValidationError(ErrMalformed, "header segment is not valid JSON", err)
	}

	claimsBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, NewValidationError(ErrMalformed, "claims segment is not valid base64url", err)
	}

	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, NewValidationError(ErrMalformed, "signature segment is not valid base64url", err)
	}

	return &rawToken{
		header:       header,
		claimsBytes:  claimsBytes,
		signingInput: parts[0] + "." + parts[1],
		signature:    signature,
	}, nil
}

// decodeClaims parses the claims segment. Only called after the signature has
// been verified, or on the revoke path where the payload is needed regardless.
func (r *rawToken) decodeClaims() (jwt.MapClaims, error) {
	var claims jwt.MapClaims
	if err := json.Unmarshal(r.claimsBytes, &claims); err != nil {
		return nil, NewValidationError(ErrMalformed, "claims segment is not valid JSON", err)
	}
	return claims, nil
}

// mapClaims converts decoded jwt.MapClaims into the Claims struct
func mapClaims(raw jwt.MapClaims) *Claims {
	claims := &Claims{
		Custom: make(map[string]interface{}),
	}

	if sub, ok := raw["sub"].(string); ok {
		claims.Subject = sub
	}
	if iss, ok := raw["iss"].(string); ok {
		claims.Issuer = iss
	}
	if jti, ok := raw["jti"].(string); ok {
		claims.TokenID = jti
	}

	if exp, err := raw.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if iat, err := raw.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}

	registeredClaims := map[string]bool{
		"sub": true, "iss": true, "aud": true, "exp": true,
		"nbf": true, "iat": true, "jti": true,
	}
	for key, value := range raw {
		if !registeredClaims[key] {
			claims.Custom[key] = value
		}
	}

	return claims
}
