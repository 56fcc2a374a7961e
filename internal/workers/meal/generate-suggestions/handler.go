// internal/workers/meal/generate-suggestions/handler.go
package generatesuggestions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cookmate-backend/internal/common/errors"
	"cookmate-backend/internal/common/logger"
	"cookmate-backend/internal/common/metrics"
	"cookmate-backend/internal/models"
)

const (
	TaskType = "generate-suggestions"
)

// Enricher attaches media links to a parsed suggestion batch.
type Enricher interface {
	Enrich(ctx context.Context, suggestions []models.Suggestion, mealType, preferredLanguage string) []models.EnrichedSuggestion
}

type Handler struct {
	config   *Config
	client   GenerativeClient
	enricher Enricher
	logger   logger.Logger
	now      func() time.Time
}

func NewHandler(config *Config, client GenerativeClient, enricher Enricher, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		client:   client,
		enricher: enricher,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
		now: time.Now,
	}
}

// Execute generates one meal plan per selected meal type. A plan whose model
// output cannot be parsed degrades to an empty, error-annotated plan rather
// than failing the batch; a failed generation call fails the whole request.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	prefs := &input.Preferences
	selected := prefs.SelectedMeals()
	if len(selected) == 0 {
		return nil, errors.NewValidationFailedError("no meal types selected")
	}

	start := h.now()
	plans := make(map[string]models.MealPlan, len(selected))

	for _, mealType := range selected {
		prompt := buildPrompt(prefs, mealType)

		text, err := h.client.Generate(ctx, prompt)
		if err != nil {
			h.logger.Error("suggestion generation failed", map[string]interface{}{
				"mealType": mealType,
				"userId":   prefs.UserID,
				"error":    err.Error(),
			})
			metrics.TasksFailed.WithLabelValues(TaskType, string(errors.Normalize(err).Code)).Inc()
			return nil, err
		}

		plans[mealType] = h.buildPlan(ctx, text, mealType, prefs.PreferredLanguage)
	}

	h.logger.Info("meal plans generated", map[string]interface{}{
		"userId":    prefs.UserID,
		"mealTypes": selected,
	})
	metrics.TasksCompleted.WithLabelValues(TaskType).Inc()
	metrics.TaskDuration.WithLabelValues(TaskType).Observe(h.now().Sub(start).Seconds())

	return &Output{
		Plans: plans,
		UserInfo: UserInfo{
			Name:              prefs.Name,
			CookName:          prefs.CookName,
			PreferredLanguage: prefs.PreferredLanguage,
		},
	}, nil
}

func (h *Handler) buildPlan(ctx context.Context, text, mealType, preferredLanguage string) models.MealPlan {
	suggestions, err := parseModelResponse(text)
	if err != nil {
		h.logger.Warn("model response unparseable, returning empty plan", map[string]interface{}{
			"mealType": mealType,
			"error":    err.Error(),
		})
		return models.MealPlan{
			Suggestions: []models.EnrichedSuggestion{},
			GeneratedAt: h.now().UTC().Format(time.RFC3339),
			Error:       "Failed to parse AI response",
		}
	}

	enriched := h.enricher.Enrich(ctx, suggestions, mealType, preferredLanguage)
	return models.MealPlan{
		Suggestions: enriched,
		TotalCount:  len(enriched),
		GeneratedAt: h.now().UTC().Format(time.RFC3339),
	}
}

// parseModelResponse extracts the JSON object from the model's raw text. The
// model is prompted for pure JSON but routinely wraps it in prose or code
// fences, so everything outside the outermost braces is discarded.
func parseModelResponse(text string) ([]models.Suggestion, error) {
	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first == -1 || last <= first {
		return nil, errors.NewParseFailedError(fmt.Errorf("no JSON object in model output"))
	}

	var parsed modelResponse
	if err := json.Unmarshal([]byte(text[first:last+1]), &parsed); err != nil {
		return nil, errors.NewParseFailedError(err)
	}
	return parsed.Suggestions, nil
}
