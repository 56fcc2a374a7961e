// internal/common/database/migrate.go
package database

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are idempotent DDL statements applied at startup, in order.
// user_preferences is one-to-one with users; deleting a user removes the row.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		name          TEXT,
		email         TEXT NOT NULL UNIQUE,
		email_verified TIMESTAMPTZ,
		image         TEXT,
		hashed_password TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS user_preferences (
		id                  SERIAL PRIMARY KEY,
		user_id             TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		name                TEXT NOT NULL,
		age                 INTEGER,
		gender              TEXT,
		dietary_preference  TEXT,
		spiciness_level     INTEGER,
		cuisine_preferences TEXT,
		ingredient_dislikes TEXT,
		cook_name           TEXT,
		cook_whatsapp       TEXT,
		preferred_language  TEXT,
		user_whatsapp       TEXT,
		meals_per_day       INTEGER,
		breakfast           BOOLEAN DEFAULT FALSE,
		lunch               BOOLEAN DEFAULT FALSE,
		dinner              BOOLEAN DEFAULT FALSE,
		onboarded           BOOLEAN DEFAULT FALSE,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id            SERIAL PRIMARY KEY,
		event_type    TEXT NOT NULL,
		resource_type TEXT NOT NULL,
		resource_id   TEXT,
		details       JSONB,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate applies the schema bootstrap. Safe to run on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
