// internal/workers/meal/save-preferences/handler_test.go
package savepreferences

import (
	"context"
	"testing"
	"time"

	"cookmate-backend/internal/common/errors"
	"cookmate-backend/internal/common/logger"
	"cookmate-backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInput() *Input {
	return &Input{
		Preferences: models.UserPreferences{
			UserID:             "user-1",
			Name:               "Asha",
			Age:                29,
			Gender:             "female",
			DietaryPreference:  "vegetarian",
			SpicinessLevel:     6,
			CuisinePreferences: "South Indian",
			IngredientDislikes: "mushroom",
			CookName:           "Lakshmi",
			PreferredLanguage:  "Kannada",
			MealsPerDay:        2,
			Breakfast:          true,
			Lunch:              true,
		},
	}
}

func TestExecute_InsertsNewProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO user_preferences`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "?column?"}).AddRow(int64(7), true))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	h := NewHandler(db, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), testInput())

	require.NoError(t, err)
	assert.Equal(t, int64(7), out.PreferenceID)
	assert.True(t, out.Created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_UpdatesExistingProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO user_preferences`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "?column?"}).AddRow(int64(7), false))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs("preferences_updated", "user_preferences", "user-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))

	h := NewHandler(db, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), testInput())

	require.NoError(t, err)
	assert.False(t, out.Created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_InsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO user_preferences`).
		WillReturnError(assert.AnError)

	h := NewHandler(db, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), testInput())

	require.Error(t, err)
	assert.Nil(t, out)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeDatabaseInsertFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestExecute_AuditFailureDoesNotFailSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO user_preferences`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "?column?"}).AddRow(int64(3), true))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnError(assert.AnError)

	h := NewHandler(db, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), testInput())

	require.NoError(t, err)
	assert.Equal(t, int64(3), out.PreferenceID)
}

func TestGetByUserID_Found(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	createdAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "name", "age", "gender", "dietary_preference", "spiciness_level",
		"cuisine_preferences", "ingredient_dislikes", "cook_name", "cook_whatsapp",
		"preferred_language", "user_whatsapp", "meals_per_day",
		"breakfast", "lunch", "dinner", "onboarded", "created_at",
	}).AddRow(
		int64(7), "user-1", "Asha", 29, "female", "vegetarian", 6,
		"South Indian", "mushroom", "Lakshmi", "+911234567890",
		"Kannada", "+919876543210", 2,
		true, true, false, true, createdAt,
	)
	mock.ExpectQuery(`SELECT (.+) FROM user_preferences`).
		WithArgs("user-1").
		WillReturnRows(rows)

	h := NewHandler(db, logger.NewTestLogger(t))
	prefs, err := h.GetByUserID(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "Asha", prefs.Name)
	assert.Equal(t, []string{"breakfast", "lunch"}, prefs.SelectedMeals())
	assert.True(t, prefs.Onboarded)
}

func TestGetByUserID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM user_preferences`).
		WithArgs("user-2").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	h := NewHandler(db, logger.NewTestLogger(t))
	_, err = h.GetByUserID(context.Background(), "user-2")

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodePreferencesNotFound, stdErr.Code)
}
