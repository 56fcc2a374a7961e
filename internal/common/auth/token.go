// internal/common/auth/token.go
package auth

import (
	"fmt"
	"time"

	"cookmate-backend/internal/common/errors"

	"github.com/golang-jwt/jwt/v5"
)

// VerificationClaims are carried by the short-lived tokens handed to the
// Telegram bot and embedded in verification links.
type VerificationClaims struct {
	UserID  string `json:"uid"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a verification token for the given user and purpose.
func (m *TokenManager) Issue(userID, purpose string) (string, error) {
	now := time.Now().UTC()
	claims := VerificationClaims{
		UserID:  userID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", errors.NewInternalError(fmt.Errorf("sign token: %w", err))
	}
	return signed, nil
}

// Verify parses a token and checks its signature, expiry and purpose.
func (m *TokenManager) Verify(tokenStr, purpose string) (*VerificationClaims, error) {
	claims := &VerificationClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, errors.NewAuthenticationError(fmt.Sprintf("token invalid: %v", err))
	}
	if !token.Valid {
		return nil, errors.NewAuthenticationError("token invalid")
	}
	if claims.Purpose != purpose {
		return nil, errors.NewAuthenticationError("token purpose mismatch")
	}
	return claims, nil
}
