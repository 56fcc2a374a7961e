// internal/workers/meal/generate-suggestions/models.go
package generatesuggestions

import "cookmate-backend/internal/models"

type Input struct {
	Preferences models.UserPreferences `json:"preferences"`
}

type Output struct {
	Plans    map[string]models.MealPlan `json:"data"`
	UserInfo UserInfo                   `json:"userInfo"`
}

// UserInfo is the display subset of the profile echoed back to clients
// alongside the generated plans.
type UserInfo struct {
	Name              string `json:"name"`
	CookName          string `json:"cookName"`
	PreferredLanguage string `json:"preferredLanguage"`
}

// modelResponse is the JSON contract the prompt demands from the
// generative model.
type modelResponse struct {
	Suggestions []models.Suggestion `json:"suggestions"`
}
