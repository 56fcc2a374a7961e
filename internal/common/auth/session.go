// internal/common/auth/session.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cookmate-backend/internal/common/errors"
	"cookmate-backend/internal/common/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// Session is the server-side state behind an opaque session cookie.
type Session struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionStore keeps sessions in redis under an opaque random token, so a
// stolen cookie carries no user data and logout is immediate.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewSessionStore(client *redis.Client, ttl time.Duration, log logger.Logger) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
		logger: log.With(map[string]interface{}{"component": "session-store"}),
	}
}

// Create stores a new session and returns its opaque token.
func (s *SessionStore) Create(ctx context.Context, userID, email string) (string, error) {
	token := uuid.New().String()
	session := Session{
		UserID:    userID,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return "", errors.NewInternalError(err)
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", errors.NewInternalError(fmt.Errorf("session store: %w", err))
	}

	return token, nil
}

// Validate resolves a token to its session and slides the expiry window.
func (s *SessionStore) Validate(ctx context.Context, token string) (*Session, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return nil, errors.NewAuthenticationError("session not found or expired")
	}
	if err != nil {
		return nil, errors.NewInternalError(fmt.Errorf("session lookup: %w", err))
	}

	var session Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, errors.NewInternalError(fmt.Errorf("session decode: %w", err))
	}

	if err := s.client.Expire(ctx, sessionKeyPrefix+token, s.ttl).Err(); err != nil {
		s.logger.Warn("session expiry refresh failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return &session, nil
}

// Destroy removes a session. Destroying an unknown token is not an error.
func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return errors.NewInternalError(fmt.Errorf("session delete: %w", err))
	}
	return nil
}
