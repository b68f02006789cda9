package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// LegacyPrefix tags credentials produced by the SHA-256 fallback
const LegacyPrefix = "sha256:"

// LegacyHash returns the tagged SHA-256 digest of the full secret.
// Weaker than bcrypt; kept so that records written by older deployments
// keep verifying. New credentials are never produced this way by HashPassword.
func LegacyHash(secret string) string {
	return LegacyPrefix + digestHex(secret)
}

// IsLegacy reports whether credential carries the fallback tag
func IsLegacy(credential string) bool {
	return strings.HasPrefix(credential, LegacyPrefix)
}

// verifyLegacy compares the digest of the full secret with the stored one
func verifyLegacy(secret, credential string) bool {
	stored := strings.TrimPrefix(credential, LegacyPrefix)
	computed := digestHex(secret)
	if len(stored) != len(computed) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(computed)) == 1
}

func digestHex(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
