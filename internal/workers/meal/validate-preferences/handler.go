// internal/workers/meal/validate-preferences/handler.go
package validatepreferences

import (
	"context"
	"encoding/json"
	"fmt"

	"cookmate-backend/internal/common/errors"
	"cookmate-backend/internal/common/logger"
	"cookmate-backend/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

const (
	TaskType = "validate-preferences"
)

// preferencesSchema pins the intake contract: the profile fields the prompt
// interpolates are required, spiciness is a 0 to 10 scale, and at least one
// meal type has to be selected.
var preferencesSchema = map[string]interface{}{
	"type": "object",
	"required": []string{
		"name", "age", "gender", "dietaryPreference",
		"spicinessLevel", "cuisinePreferences", "preferredLanguage",
	},
	"properties": map[string]interface{}{
		"name":               map[string]interface{}{"type": "string", "minLength": 1},
		"age":                map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 120},
		"gender":             map[string]interface{}{"type": "string", "minLength": 1},
		"dietaryPreference":  map[string]interface{}{"type": "string", "minLength": 1},
		"spicinessLevel":     map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 10},
		"cuisinePreferences": map[string]interface{}{"type": "string", "minLength": 1},
		"ingredientDislikes": map[string]interface{}{"type": "string"},
		"preferredLanguage":  map[string]interface{}{"type": "string", "minLength": 1},
		"cookName":           map[string]interface{}{"type": "string"},
		"cookWhatsApp":       map[string]interface{}{"type": "string"},
		"userWhatsApp":       map[string]interface{}{"type": "string"},
		"breakfast":          map[string]interface{}{"type": "boolean"},
		"lunch":              map[string]interface{}{"type": "boolean"},
		"dinner":             map[string]interface{}{"type": "boolean"},
	},
	"anyOf": []map[string]interface{}{
		{"properties": map[string]interface{}{"breakfast": map[string]interface{}{"const": true}}, "required": []string{"breakfast"}},
		{"properties": map[string]interface{}{"lunch": map[string]interface{}{"const": true}}, "required": []string{"lunch"}},
		{"properties": map[string]interface{}{"dinner": map[string]interface{}{"const": true}}, "required": []string{"dinner"}},
	},
}

type Handler struct {
	logger logger.Logger
}

func NewHandler(log logger.Logger) *Handler {
	return &Handler{
		logger: log.With(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute checks the raw intake payload against the preferences schema and,
// when it passes, decodes it into the typed profile.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	schemaLoader := gojsonschema.NewGoLoader(preferencesSchema)
	documentLoader := gojsonschema.NewGoLoader(input.Payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, errors.NewInternalError(fmt.Errorf("schema validation: %w", err))
	}

	if !result.Valid() {
		validationErrors := make([]ValidationError, len(result.Errors()))
		for i, desc := range result.Errors() {
			validationErrors[i] = ValidationError{
				Field:   desc.Field(),
				Message: desc.Description(),
			}
		}
		h.logger.Warn("preference payload rejected", map[string]interface{}{
			"errorCount": len(validationErrors),
		})
		return &Output{Valid: false, Errors: validationErrors}, nil
	}

	var prefs models.UserPreferences
	raw, _ := json.Marshal(input.Payload)
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return nil, errors.NewValidationFailedError(err.Error())
	}

	return &Output{Valid: true, Preferences: prefs}, nil
}
