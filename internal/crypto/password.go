package crypto

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// MaxSecretBytes is the bcrypt input ceiling
const MaxSecretBytes = 72

// TruncateSecret returns at most MaxSecretBytes of the UTF-8 encoding of secret.
// A valid code point that would be cut in half is dropped entirely.
// Invalid UTF-8 is cut at exactly MaxSecretBytes.
func TruncateSecret(secret string) []byte {
	b := []byte(secret)
	if len(b) <= MaxSecretBytes {
		return b
	}

	n := MaxSecretBytes
	// Ищем начало руны не дальше utf8.UTFMax-1 байт назад
	for i := n - 1; i >= n-(utf8.UTFMax-1) && i >= 0; i-- {
		if !utf8.RuneStart(b[i]) {
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r != utf8.RuneError && i+size > n {
			return b[:i]
		}
		break
	}
	return b[:n]
}

// HashPassword hashes secret with bcrypt at the default cost
func HashPassword(secret string) (string, error) {
	return HashPasswordWithCost(secret, bcrypt.DefaultCost)
}

// HashPasswordWithCost hashes secret with bcrypt at the given cost.
// Input longer than MaxSecretBytes is truncated first, so length never causes an error.
func HashPasswordWithCost(secret string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(TruncateSecret(secret), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks secret against a stored credential.
// Legacy credentials are compared by digest, everything else goes to bcrypt.
// Any failure is reported as a mismatch.
func VerifyPassword(secret, credential string) bool {
	if credential == "" {
		return false
	}

	if IsLegacy(credential) {
		return verifyLegacy(secret, credential)
	}

	err := bcrypt.CompareHashAndPassword([]byte(credential), TruncateSecret(secret))
	return err == nil
}
