package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Password hashing is intentionally slow; callers should treat both functions
// as blocking, CPU-bound work.

// HashPassword derives a bcrypt hash from the plaintext password. The
// plaintext is never persisted anywhere.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("auth: password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the stored hash.
func VerifyPassword(hash, password string) error {
	if hash == "" {
		return errors.New("auth: password hash is empty")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
