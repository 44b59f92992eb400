package tokenauth

import (
	"crypto/hmac"
	"crypto/sha256"
)

// signingAlgorithm is the only algorithm this package accepts. The subsystem
// runs on a single shared symmetric secret; asymmetric federation is out of
// scope.
const signingAlgorithm = "HS256"

// verifySignature checks an HMAC-SHA256 signature over the signing input using
// a constant-time comparison. It fails closed: any anomaly (empty secret,
// empty signature) reports an invalid signature rather than propagating.
func verifySignature(signingInput string, signature, secret []byte) bool {
	if len(secret) == 0 || len(signature) == 0 {
		return false
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(signingInput))
	return hmac.Equal(mac.Sum(nil), signature)
}
