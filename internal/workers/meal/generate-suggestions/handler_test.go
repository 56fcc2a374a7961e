// internal/workers/meal/generate-suggestions/handler_test.go
package generatesuggestions

import (
	"context"
	"strings"
	"testing"

	"cookmate-backend/internal/common/errors"
	"cookmate-backend/internal/common/logger"
	"cookmate-backend/internal/common/metrics"
	"cookmate-backend/internal/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validModelOutput = `Here are your suggestions:
{
  "suggestions": [
    {
      "name": "Masala Dosa",
      "description": "Crispy fermented crepe",
      "recipe": {"prepTime": "20 minutes", "cookTime": "10 minutes", "servings": 2, "instructions": ["Soak", "Grind", "Ferment"]},
      "ingredients": [{"item": "rice", "quantity": "2", "unit": "cups"}],
      "nutrition": {"calories": "350", "protein": "8g", "carbs": "60g"},
      "searchTerms": {"youtube": "masala dosa recipe", "image": "masala dosa plate"}
    }
  ]
}
Enjoy!`

type stubClient struct {
	responses map[string]string
	err       error
	prompts   []string
}

func (s *stubClient) Generate(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	for needle, response := range s.responses {
		if strings.Contains(prompt, needle) {
			return response, nil
		}
	}
	return validModelOutput, nil
}

type passthroughEnricher struct{}

func (passthroughEnricher) Enrich(_ context.Context, suggestions []models.Suggestion, mealType, _ string) []models.EnrichedSuggestion {
	enriched := make([]models.EnrichedSuggestion, len(suggestions))
	for i, s := range suggestions {
		enriched[i] = models.EnrichedSuggestion{Suggestion: s, MealType: mealType}
	}
	return enriched
}

func testPreferences() models.UserPreferences {
	return models.UserPreferences{
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
		Breakfast:          true,
		Lunch:              true,
	}
}

func TestExecute_OnePlanPerSelectedMeal(t *testing.T) {
	client := &stubClient{}
	h := NewHandler(DefaultConfig(), client, passthroughEnricher{}, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Preferences: testPreferences()})

	require.NoError(t, err)
	require.Len(t, out.Plans, 2)
	require.Contains(t, out.Plans, models.MealTypeBreakfast)
	require.Contains(t, out.Plans, models.MealTypeLunch)
	assert.NotContains(t, out.Plans, models.MealTypeDinner)

	breakfast := out.Plans[models.MealTypeBreakfast]
	require.Len(t, breakfast.Suggestions, 1)
	assert.Equal(t, "Masala Dosa", breakfast.Suggestions[0].Name)
	assert.Equal(t, models.MealTypeBreakfast, breakfast.Suggestions[0].MealType)
	assert.Equal(t, 1, breakfast.TotalCount)
	assert.Empty(t, breakfast.Error)

	assert.Equal(t, "Asha", out.UserInfo.Name)
	assert.Equal(t, "Lakshmi", out.UserInfo.CookName)

	// Each meal type got its own prompt.
	require.Len(t, client.prompts, 2)
	assert.Contains(t, client.prompts[0], "exactly 3 breakfast suggestions")
	assert.Contains(t, client.prompts[1], "exactly 3 lunch suggestions")
}

func TestExecute_PromptCarriesProfile(t *testing.T) {
	client := &stubClient{}
	h := NewHandler(DefaultConfig(), client, passthroughEnricher{}, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{Preferences: testPreferences()})

	require.NoError(t, err)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, "- Age: 29")
	assert.Contains(t, prompt, "- Spiciness Level: 6/10")
	assert.Contains(t, prompt, "Avoid ingredients: mushroom")
	assert.Contains(t, prompt, "Dish Name in Kannada")
	assert.Contains(t, prompt, "for vegetarian")
}

func TestExecute_UnparseableResponseDegradesPlan(t *testing.T) {
	client := &stubClient{
		responses: map[string]string{
			"breakfast": "I cannot help with that.",
		},
	}
	h := NewHandler(DefaultConfig(), client, passthroughEnricher{}, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Preferences: testPreferences()})

	require.NoError(t, err)
	breakfast := out.Plans[models.MealTypeBreakfast]
	assert.Empty(t, breakfast.Suggestions)
	assert.Equal(t, "Failed to parse AI response", breakfast.Error)

	// The lunch plan still came through.
	lunch := out.Plans[models.MealTypeLunch]
	assert.Len(t, lunch.Suggestions, 1)
	assert.Empty(t, lunch.Error)
}

func TestExecute_GenerationFailureFailsBatch(t *testing.T) {
	client := &stubClient{err: errors.NewGenerationFailedError(context.DeadlineExceeded)}
	h := NewHandler(DefaultConfig(), client, passthroughEnricher{}, logger.NewTestLogger(t))

	failed := metrics.TasksFailed.WithLabelValues(TaskType, string(errors.ErrCodeGenerationFailed))
	before := testutil.ToFloat64(failed)

	out, err := h.Execute(context.Background(), &Input{Preferences: testPreferences()})

	require.Error(t, err)
	assert.Nil(t, out)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeGenerationFailed, stdErr.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(failed))
}

func TestExecute_NonStandardFailureRecordedAsInternal(t *testing.T) {
	client := &stubClient{err: context.DeadlineExceeded}
	h := NewHandler(DefaultConfig(), client, passthroughEnricher{}, logger.NewTestLogger(t))

	failed := metrics.TasksFailed.WithLabelValues(TaskType, string(errors.ErrCodeInternalError))
	before := testutil.ToFloat64(failed)

	out, err := h.Execute(context.Background(), &Input{Preferences: testPreferences()})

	require.Error(t, err)
	assert.Nil(t, out)
	assert.Equal(t, before+1, testutil.ToFloat64(failed))
}

func TestExecute_NoMealsSelected(t *testing.T) {
	prefs := testPreferences()
	prefs.Breakfast = false
	prefs.Lunch = false
	h := NewHandler(DefaultConfig(), &stubClient{}, passthroughEnricher{}, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{Preferences: prefs})

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidationFailed, stdErr.Code)
}

func TestParseModelResponse_CodeFence(t *testing.T) {
	fenced := "```json\n{\"suggestions\":[{\"name\":\"Upma\"}]}\n```"

	suggestions, err := parseModelResponse(fenced)

	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Upma", suggestions[0].Name)
}

func TestParseModelResponse_NoJSON(t *testing.T) {
	_, err := parseModelResponse("plain refusal text")

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeParseFailed, stdErr.Code)
}
