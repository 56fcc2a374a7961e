// internal/workers/meal/save-preferences/models.go
package savepreferences

import "cookmate-backend/internal/models"

type Input struct {
	Preferences models.UserPreferences `json:"preferences"`
}

type Output struct {
	PreferenceID int64 `json:"preferenceId"`
	Created      bool  `json:"created"`
}
