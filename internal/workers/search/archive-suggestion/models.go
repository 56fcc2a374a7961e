// internal/workers/search/archive-suggestion/models.go
package archivesuggestion

import "cookmate-backend/internal/models"

type Input struct {
	UserID string                     `json:"userId"`
	Plans  map[string]models.MealPlan `json:"plans"`
}

type Output struct {
	Archived int `json:"archived"`
}

// ArchivedSuggestion is the per-dish document shape stored in the index.
type ArchivedSuggestion struct {
	UserID      string                    `json:"user_id"`
	MealType    string                    `json:"meal_type"`
	Suggestion  models.EnrichedSuggestion `json:"suggestion"`
	GeneratedAt string                    `json:"generated_at"`
}

type SearchInput struct {
	UserID   string `json:"userId"`
	MealType string `json:"mealType,omitempty"`
	Size     int    `json:"size,omitempty"`
}

type SearchOutput struct {
	Suggestions []ArchivedSuggestion `json:"suggestions"`
	TotalHits   int                  `json:"totalHits"`
}
