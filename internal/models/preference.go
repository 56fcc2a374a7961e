// internal/models/preference.go
package models

import "time"

// UserPreferences is the one-per-user dietary profile used to drive
// suggestion generation. Cuisine preferences and ingredient dislikes are
// comma-separated free text, interpolated into the prompt as-is.
type UserPreferences struct {
	ID                 int64     `json:"id,omitempty"`
	UserID             string    `json:"userId"`
	Name               string    `json:"name"`
	Age                int       `json:"age"`
	Gender             string    `json:"gender"`
	DietaryPreference  string    `json:"dietaryPreference"`
	SpicinessLevel     int       `json:"spicinessLevel"`
	CuisinePreferences string    `json:"cuisinePreferences"`
	IngredientDislikes string    `json:"ingredientDislikes"`
	CookName           string    `json:"cookName"`
	CookWhatsApp       string    `json:"cookWhatsApp"`
	PreferredLanguage  string    `json:"preferredLanguage"`
	UserWhatsApp       string    `json:"userWhatsApp"`
	MealsPerDay        int       `json:"mealsPerDay"`
	Breakfast          bool      `json:"breakfast"`
	Lunch              bool      `json:"lunch"`
	Dinner             bool      `json:"dinner"`
	Onboarded          bool      `json:"onboarded,omitempty"`
	CreatedAt          time.Time `json:"createdAt,omitempty"`
}

// SelectedMeals returns the meal types the user opted into, in fixed order.
func (p *UserPreferences) SelectedMeals() []string {
	var meals []string
	if p.Breakfast {
		meals = append(meals, MealTypeBreakfast)
	}
	if p.Lunch {
		meals = append(meals, MealTypeLunch)
	}
	if p.Dinner {
		meals = append(meals, MealTypeDinner)
	}
	return meals
}

const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
)
