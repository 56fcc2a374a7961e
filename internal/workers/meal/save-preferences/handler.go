// internal/workers/meal/save-preferences/handler.go
package savepreferences

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"cookmate-backend/internal/common/errors"
	"cookmate-backend/internal/common/logger"
	"cookmate-backend/internal/models"
)

const (
	TaskType = "save-preferences"
)

type Handler struct {
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		db:     db,
		logger: log.With(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute upserts the user's one-per-user preference row. Resubmitting the
// onboarding form overwrites the previous profile in place.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	p := &input.Preferences

	var id int64
	var created bool
	err := h.db.QueryRowContext(ctx, `
		INSERT INTO user_preferences (
			user_id, name, age, gender, dietary_preference, spiciness_level,
			cuisine_preferences, ingredient_dislikes, cook_name, cook_whatsapp,
			preferred_language, user_whatsapp, meals_per_day,
			breakfast, lunch, dinner, onboarded, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, TRUE, now())
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			dietary_preference = EXCLUDED.dietary_preference,
			spiciness_level = EXCLUDED.spiciness_level,
			cuisine_preferences = EXCLUDED.cuisine_preferences,
			ingredient_dislikes = EXCLUDED.ingredient_dislikes,
			cook_name = EXCLUDED.cook_name,
			cook_whatsapp = EXCLUDED.cook_whatsapp,
			preferred_language = EXCLUDED.preferred_language,
			user_whatsapp = EXCLUDED.user_whatsapp,
			meals_per_day = EXCLUDED.meals_per_day,
			breakfast = EXCLUDED.breakfast,
			lunch = EXCLUDED.lunch,
			dinner = EXCLUDED.dinner,
			onboarded = TRUE,
			updated_at = now()
		RETURNING id, (created_at = updated_at)`,
		p.UserID, p.Name, p.Age, p.Gender, p.DietaryPreference, p.SpicinessLevel,
		p.CuisinePreferences, p.IngredientDislikes, p.CookName, p.CookWhatsApp,
		p.PreferredLanguage, p.UserWhatsApp, p.MealsPerDay,
		p.Breakfast, p.Lunch, p.Dinner,
	).Scan(&id, &created)
	if err != nil {
		return nil, errors.NewDatabaseInsertFailedError(err)
	}

	h.logger.Info("preferences saved", map[string]interface{}{
		"userId":       p.UserID,
		"preferenceId": id,
		"created":      created,
	})

	h.writeAudit(ctx, p, id, created)

	return &Output{PreferenceID: id, Created: created}, nil
}

// GetByUserID loads the stored profile for suggestion generation.
func (h *Handler) GetByUserID(ctx context.Context, userID string) (*models.UserPreferences, error) {
	p := &models.UserPreferences{}
	err := h.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, age, gender, dietary_preference, spiciness_level,
			cuisine_preferences, ingredient_dislikes, cook_name, cook_whatsapp,
			preferred_language, user_whatsapp, meals_per_day,
			breakfast, lunch, dinner, onboarded, created_at
		FROM user_preferences
		WHERE user_id = $1`, userID).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Age, &p.Gender, &p.DietaryPreference, &p.SpicinessLevel,
		&p.CuisinePreferences, &p.IngredientDislikes, &p.CookName, &p.CookWhatsApp,
		&p.PreferredLanguage, &p.UserWhatsApp, &p.MealsPerDay,
		&p.Breakfast, &p.Lunch, &p.Dinner, &p.Onboarded, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewPreferencesNotFoundError(userID)
	}
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return p, nil
}

// writeAudit records the save in audit_log. Auditing is non-critical: a
// failed insert is logged and swallowed.
func (h *Handler) writeAudit(ctx context.Context, p *models.UserPreferences, id int64, created bool) {
	eventType := "preferences_updated"
	if created {
		eventType = "preferences_created"
	}

	details, err := json.Marshal(map[string]interface{}{
		"userId":            p.UserID,
		"mealsSelected":     p.SelectedMeals(),
		"preferredLanguage": p.PreferredLanguage,
	})
	if err != nil {
		details = []byte("{}")
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		eventType, "user_preferences", p.UserID, details, time.Now().UTC(),
	)
	if err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"userId": p.UserID,
			"error":  err.Error(),
		})
	}
}
