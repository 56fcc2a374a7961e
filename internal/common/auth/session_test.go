// internal/common/auth/session_test.go
package auth

import (
	"context"
	"testing"
	"time"

	"cookmate-backend/internal/common/errors"
	"cookmate-backend/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionStore(client, 30*time.Minute, logger.NewTestLogger(t)), mr
}

func TestSessionRoundTrip(t *testing.T) {
	store, _ := newSessionStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1", "asha@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := store.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, "asha@example.com", session.Email)
}

func TestValidate_UnknownToken(t *testing.T) {
	store, _ := newSessionStore(t)

	_, err := store.Validate(context.Background(), "not-a-token")

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeAuthenticationError, stdErr.Code)
}

func TestValidate_ExpiredToken(t *testing.T) {
	store, mr := newSessionStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1", "asha@example.com")
	require.NoError(t, err)

	mr.FastForward(31 * time.Minute)

	_, err = store.Validate(ctx, token)
	require.Error(t, err)
}

func TestValidate_SlidesExpiry(t *testing.T) {
	store, mr := newSessionStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1", "asha@example.com")
	require.NoError(t, err)

	// Touch the session just before expiry, then cross the original window.
	mr.FastForward(29 * time.Minute)
	_, err = store.Validate(ctx, token)
	require.NoError(t, err)

	mr.FastForward(29 * time.Minute)
	_, err = store.Validate(ctx, token)
	assert.NoError(t, err)
}

func TestDestroy(t *testing.T) {
	store, _ := newSessionStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1", "asha@example.com")
	require.NoError(t, err)

	require.NoError(t, store.Destroy(ctx, token))

	_, err = store.Validate(ctx, token)
	require.Error(t, err)

	// Destroying again is a no-op.
	assert.NoError(t, store.Destroy(ctx, token))
}
