// internal/workers/meal/validate-preferences/models.go
package validatepreferences

import "cookmate-backend/internal/models"

type Input struct {
	Payload map[string]interface{} `json:"payload"`
}

type Output struct {
	Valid       bool                   `json:"valid"`
	Errors      []ValidationError      `json:"errors,omitempty"`
	Preferences models.UserPreferences `json:"preferences"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
