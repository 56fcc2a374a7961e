// internal/common/auth/store_test.go
package auth

import (
	"context"
	"testing"
	"time"

	"cookmate-backend/internal/common/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	createdAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	store := NewUserStore(db, 4)
	user, err := store.Register(context.Background(), "Asha", "asha@example.com", "hunter22")

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.True(t, CheckPassword(user.HashedPassword, "hunter22"))
	assert.Equal(t, createdAt, user.CreatedAt)
}

func TestAuthenticate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	hash, err := HashPassword("hunter22", 4)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "email_verified", "hashed_password", "created_at"}).
		AddRow("user-1", "Asha", "asha@example.com", nil, hash, time.Now())
	mock.ExpectQuery(`SELECT (.+) FROM users`).
		WithArgs("asha@example.com").
		WillReturnRows(rows)

	store := NewUserStore(db, 4)
	user, err := store.Authenticate(context.Background(), "asha@example.com", "hunter22")

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	hash, err := HashPassword("hunter22", 4)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "email_verified", "hashed_password", "created_at"}).
		AddRow("user-1", "Asha", "asha@example.com", nil, hash, time.Now())
	mock.ExpectQuery(`SELECT (.+) FROM users`).
		WillReturnRows(rows)

	store := NewUserStore(db, 4)
	_, err = store.Authenticate(context.Background(), "asha@example.com", "wrong")

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeAuthenticationError, stdErr.Code)
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	store := NewUserStore(db, 4)
	_, err = store.Authenticate(context.Background(), "nobody@example.com", "whatever")

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	// Same error as a wrong password, no account enumeration.
	assert.Equal(t, errors.ErrCodeAuthenticationError, stdErr.Code)
}

func TestMarkEmailVerified(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET email_verified`).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewUserStore(db, 4)
	assert.NoError(t, store.MarkEmailVerified(context.Background(), "user-1"))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret", 4)
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "secret"))
	assert.False(t, CheckPassword(hash, "Secret"))
	assert.False(t, CheckPassword("not-a-hash", "secret"))
}
