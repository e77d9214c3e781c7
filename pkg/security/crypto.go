package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the AES-256 key length expected by Encrypt and Decrypt.
const KeySize = 32

// KeyFromSecret derives an encryption key from an application secret,
// such as APP_KEY.
func KeyFromSecret(secret string) ([]byte, error) {
	key := make([]byte, KeySize)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("zenith encryption key"))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, errors.Join(ErrInvalidKey, err)
	}
	return key, nil
}

// Encrypt seals plaintext with AES-256-GCM and returns
// base64url(nonce || ciphertext).
func Encrypt(plaintext string, key []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Join(ErrEncrypt, err)
	}
	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Tampered or truncated input fails with ErrDecrypt.
func Decrypt(encoded string, key []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", errors.Join(ErrDecrypt, err)
	}
	if len(data) < gcm.NonceSize() {
		return "", ErrDecrypt
	}
	nonce, sealed := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", errors.Join(ErrDecrypt, err)
	}
	return string(plain), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrInvalidKey, err)
	}
	return cipher.NewGCM(block)
}
