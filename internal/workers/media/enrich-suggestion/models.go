// internal/workers/media/enrich-suggestion/models.go
package enrichsuggestion

import "cookmate-backend/internal/models"

type Input struct {
	Suggestions       []models.Suggestion `json:"suggestions"`
	MealType          string              `json:"mealType"`
	PreferredLanguage string              `json:"preferredLanguage"`
}

type Output struct {
	Enriched []models.EnrichedSuggestion `json:"enriched"`
}
