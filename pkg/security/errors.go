package security

import "errors"

var (
	ErrHashPassword  = errors.New("security: failed to hash password")
	ErrInvalidKey    = errors.New("security: encryption key must be 32 bytes")
	ErrEncrypt       = errors.New("security: failed to encrypt data")
	ErrDecrypt       = errors.New("security: failed to decrypt data")
	ErrTokenLength   = errors.New("security: token length must be positive")
	ErrRandomFailure = errors.New("security: failed to read random bytes")
)
