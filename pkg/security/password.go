package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost used when HashPassword receives zero.
const DefaultCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash of password.
// Costs outside bcrypt's range fall back to DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", errors.Join(ErrHashPassword, err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches a bcrypt hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
