// internal/common/auth/store.go
package auth

import (
	"context"
	"database/sql"
	"fmt"

	"cookmate-backend/internal/common/errors"
	"cookmate-backend/internal/models"

	"github.com/google/uuid"
)

// UserStore owns the users table.
type UserStore struct {
	db         *sql.DB
	bcryptCost int
}

func NewUserStore(db *sql.DB, bcryptCost int) *UserStore {
	return &UserStore{db: db, bcryptCost: bcryptCost}
}

// Register creates an account with a hashed password.
func (s *UserStore) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, errors.NewInternalError(fmt.Errorf("hash password: %w", err))
	}

	user := &models.User{
		ID:             uuid.New().String(),
		Name:           name,
		Email:          email,
		HashedPassword: hash,
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (id, name, email, hashed_password)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		user.ID, user.Name, user.Email, user.HashedPassword,
	).Scan(&user.CreatedAt)
	if err != nil {
		return nil, errors.NewDatabaseInsertFailedError(err)
	}

	return user, nil
}

// Authenticate checks email and password and returns the account. The same
// error is returned for unknown email and wrong password.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user := &models.User{}
	var emailVerified sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, email_verified, hashed_password, created_at
		FROM users
		WHERE email = $1`, email).Scan(
		&user.ID, &user.Name, &user.Email, &emailVerified, &user.HashedPassword, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewAuthenticationError("invalid email or password")
	}
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if emailVerified.Valid {
		user.EmailVerified = emailVerified.Time
	}

	if !CheckPassword(user.HashedPassword, password) {
		return nil, errors.NewAuthenticationError("invalid email or password")
	}

	return user, nil
}

// GetByID loads an account by its ID.
func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	var emailVerified sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, email_verified, created_at
		FROM users
		WHERE id = $1`, id).Scan(
		&user.ID, &user.Name, &user.Email, &emailVerified, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewAuthenticationError("user not found")
	}
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if emailVerified.Valid {
		user.EmailVerified = emailVerified.Time
	}
	return user, nil
}

// MarkEmailVerified stamps the verification time after a link or bot flow
// completes.
func (s *UserStore) MarkEmailVerified(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET email_verified = now() WHERE id = $1`, id)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.NewAuthenticationError("user not found")
	}
	return nil
}
