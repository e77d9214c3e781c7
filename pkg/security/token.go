package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

// CSRFTokenBytes is the entropy of tokens from NewCSRFToken.
const CSRFTokenBytes = 32

// GenerateToken returns n random bytes, hex encoded.
func GenerateToken(n int) (string, error) {
	if n <= 0 {
		return "", ErrTokenLength
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrRandomFailure, err)
	}
	return hex.EncodeToString(b), nil
}

// NewCSRFToken returns a fresh anti-forgery token.
func NewCSRFToken() (string, error) {
	return GenerateToken(CSRFTokenBytes)
}

// ValidateCSRFToken compares tokens in constant time.
// An empty expected token never validates.
func ValidateCSRFToken(expected, got string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}
