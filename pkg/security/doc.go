// Package security bundles the helpers web handlers reach for most:
// bcrypt password hashing, random and CSRF tokens, AES-GCM encryption,
// HTML sanitizing with bluemonday and e-mail validation.
//
//	hash, err := security.HashPassword(form.Password, 0)
//	if !security.VerifyPassword(form.Password, user.Hash) {
//		return zenith.ErrUnauthorized("invalid credentials")
//	}
//
// Encrypt takes a 32-byte key; derive one from the application secret:
//
//	key, err := security.KeyFromSecret(cfg.App.Key)
//	sealed, err := security.Encrypt("4111-1111", key)
package security
