// internal/workers/meal/validate-preferences/handler_test.go
package validatepreferences

import (
	"context"
	"testing"

	"cookmate-backend/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"userId":             "user-1",
		"name":               "Asha",
		"age":                29,
		"gender":             "female",
		"dietaryPreference":  "vegetarian",
		"spicinessLevel":     6,
		"cuisinePreferences": "South Indian",
		"ingredientDislikes": "mushroom",
		"preferredLanguage":  "Kannada",
		"breakfast":          true,
		"lunch":              true,
		"dinner":             false,
	}
}

func TestExecute_ValidPayload(t *testing.T) {
	h := NewHandler(logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Payload: validPayload()})

	require.NoError(t, err)
	assert.True(t, out.Valid)
	assert.Empty(t, out.Errors)
	assert.Equal(t, "Asha", out.Preferences.Name)
	assert.Equal(t, 6, out.Preferences.SpicinessLevel)
	assert.Equal(t, []string{"breakfast", "lunch"}, out.Preferences.SelectedMeals())
}

func TestExecute_MissingRequiredFields(t *testing.T) {
	payload := validPayload()
	delete(payload, "name")
	delete(payload, "dietaryPreference")
	h := NewHandler(logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Payload: payload})

	require.NoError(t, err)
	assert.False(t, out.Valid)
	require.NotEmpty(t, out.Errors)

	var messages []string
	for _, e := range out.Errors {
		messages = append(messages, e.Message)
	}
	assert.Contains(t, messages, "name is required")
	assert.Contains(t, messages, "dietaryPreference is required")
}

func TestExecute_SpicinessOutOfRange(t *testing.T) {
	h := NewHandler(logger.NewTestLogger(t))

	for _, level := range []int{-1, 11} {
		payload := validPayload()
		payload["spicinessLevel"] = level

		out, err := h.Execute(context.Background(), &Input{Payload: payload})

		require.NoError(t, err)
		assert.False(t, out.Valid, "spiciness %d should be rejected", level)
	}
}

func TestExecute_NoMealSelected(t *testing.T) {
	payload := validPayload()
	payload["breakfast"] = false
	payload["lunch"] = false
	payload["dinner"] = false
	h := NewHandler(logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Payload: payload})

	require.NoError(t, err)
	assert.False(t, out.Valid)
}

func TestExecute_WrongTypes(t *testing.T) {
	payload := validPayload()
	payload["age"] = "twenty nine"
	h := NewHandler(logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Payload: payload})

	require.NoError(t, err)
	assert.False(t, out.Valid)
}
