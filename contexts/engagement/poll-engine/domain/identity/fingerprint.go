package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint derives the weak anti-replay signal for a request: a one-way
// hash over network address, client agent string, and poll id. Shared IPs and
// proxy hops can collide, so it only ever acts as a secondary check behind
// the signed token.
func Fingerprint(ipAddress string, userAgent string, pollID string) string {
	if userAgent == "" {
		userAgent = "unknown"
	}
	sum := sha256.Sum256([]byte(ipAddress + userAgent + pollID))
	return hex.EncodeToString(sum[:])
}
