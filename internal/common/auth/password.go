// internal/common/auth/password.go

// Package auth covers account storage, password hashing, opaque redis
// sessions and the signed tokens used for Telegram account linking.
package auth

import "golang.org/x/crypto/bcrypt"

const defaultBcryptCost = 12

// HashPassword returns the bcrypt hash for a password. A non-positive cost
// falls back to the default.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = defaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
// bcrypt's comparison is timing-safe.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
