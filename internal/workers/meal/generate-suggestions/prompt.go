// internal/workers/meal/generate-suggestions/prompt.go
package generatesuggestions

import (
	"fmt"
	"strings"

	"cookmate-backend/internal/models"
)

// buildPrompt renders the chef-assistant prompt for one meal type. The FORMAT
// block pins the JSON contract parsed by the handler, so any change here has
// to stay in sync with modelResponse.
func buildPrompt(prefs *models.UserPreferences, mealType string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a professional chef assistant. Generate exactly 3 %s suggestions based on these user preferences:\n", mealType)
	b.WriteString("USER PROFILE:\n")
	fmt.Fprintf(&b, "- Age: %d\n", prefs.Age)
	fmt.Fprintf(&b, "- Gender: %s\n", prefs.Gender)
	fmt.Fprintf(&b, "- Dietary Preference: %s\n", prefs.DietaryPreference)
	fmt.Fprintf(&b, "- Spiciness Level: %d/10\n", prefs.SpicinessLevel)
	fmt.Fprintf(&b, "- Cuisine Preferences: %s\n", prefs.CuisinePreferences)
	fmt.Fprintf(&b, "- Ingredient Dislikes: %s\n", prefs.IngredientDislikes)
	fmt.Fprintf(&b, "- Preferred Language: %s\n", prefs.PreferredLanguage)
	b.WriteString("REQUIREMENTS:\n")
	fmt.Fprintf(&b, "1. Provide exactly 3 different %s options\n", mealType)
	fmt.Fprintf(&b, "2. Each suggestion must be suitable for %s diet\n", prefs.DietaryPreference)
	fmt.Fprintf(&b, "3. Respect the spiciness level of %d/10\n", prefs.SpicinessLevel)
	fmt.Fprintf(&b, "4. Avoid ingredients: %s\n", prefs.IngredientDislikes)
	fmt.Fprintf(&b, "5. Focus on %s cuisine styles\n", prefs.CuisinePreferences)
	b.WriteString("6. Consider age-appropriate portions and nutrition\n")
	b.WriteString("FORMAT YOUR RESPONSE EXACTLY AS JSON:\n")
	b.WriteString(`{
  "suggestions": [
    {
`)
	fmt.Fprintf(&b, "      \"name\": \"Dish Name in %s\",\n", prefs.PreferredLanguage)
	fmt.Fprintf(&b, "      \"description\": \"Brief description in %s\",\n", prefs.PreferredLanguage)
	b.WriteString(`      "recipe": {
        "prepTime": "X minutes",
        "cookTime": "X minutes",
        "servings": X,
        "instructions": [
`)
	fmt.Fprintf(&b, "          \"Step 1 in %s\",\n", prefs.PreferredLanguage)
	fmt.Fprintf(&b, "          \"Step 2 in %s\",\n", prefs.PreferredLanguage)
	b.WriteString(`          "..."
        ]
      },
      "ingredients": [
        {
          "item": "ingredient name",
          "quantity": "amount",
          "unit": "measurement unit"
        }
      ],
      "nutrition": {
        "calories": "approximate calories",
        "protein": "protein content",
        "carbs": "carb content"
      },
      "searchTerms": {
`)
	fmt.Fprintf(&b, "        \"youtube\": \"authentic Dish Name recipe tutorial in %s for %s\",\n", prefs.PreferredLanguage, prefs.DietaryPreference)
	b.WriteString(`        "image": "specific search term for food image"
      }
    }
  ]
}
`)
	b.WriteString("Make sure the response is valid JSON and includes all required fields.\n")

	return b.String()
}
