// internal/workers/media/enrich-suggestion/handler.go
package enrichsuggestion

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"cookmate-backend/internal/common/logger"
	"cookmate-backend/internal/common/metrics"
	"cookmate-backend/internal/models"
)

const (
	TaskType = "enrich-suggestion"

	imageBaseURL    = "https://source.unsplash.com/800x600/?"
	fallbackBaseURL = "https://via.placeholder.com/800x600/FF6B6B/FFFFFF?text="
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// VideoSelector picks the best video for a search term. It never fails:
// degraded outcomes come back as a search-link selection.
type VideoSelector interface {
	Select(ctx context.Context, searchTerm, preferredLanguage string) models.VideoSelection
}

type Handler struct {
	config   *Config
	selector VideoSelector
	logger   logger.Logger
}

func NewHandler(config *Config, selector VideoSelector, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		selector: selector,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

// Execute attaches media to every suggestion in the batch. Video selection
// dominates the latency so suggestions are enriched concurrently; results
// keep the input order.
func (h *Handler) Execute(ctx context.Context, input *Input) *Output {
	enriched := make([]models.EnrichedSuggestion, len(input.Suggestions))

	sem := make(chan struct{}, h.config.MaxConcurrency)
	var wg sync.WaitGroup
	for i, suggestion := range input.Suggestions {
		wg.Add(1)
		go func(i int, s models.Suggestion) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			enriched[i] = models.EnrichedSuggestion{
				Suggestion: s,
				Media: models.Media{
					Video:         h.selector.Select(ctx, s.SearchTerms.YouTube, input.PreferredLanguage),
					ImageURL:      imageLink(s.SearchTerms.Image),
					FallbackImage: fallbackImage(s.Name),
				},
				MealType: input.MealType,
			}
		}(i, suggestion)
	}
	wg.Wait()

	h.logger.Info("suggestions enriched", map[string]interface{}{
		"mealType": input.MealType,
		"count":    len(enriched),
	})
	metrics.TasksCompleted.WithLabelValues(TaskType).Inc()

	return &Output{Enriched: enriched}
}

// imageLink builds a stock-photo URL from the model's image search term.
// Whitespace collapses to dashes before encoding so the keyword list stays
// readable in the final URL.
func imageLink(searchTerm string) string {
	term := whitespacePattern.ReplaceAllString(strings.ToLower(searchTerm), "-")
	return imageBaseURL + url.QueryEscape(term) + ",food"
}

// fallbackImage builds a placeholder URL shown when the primary image fails
// to load.
func fallbackImage(dishName string) string {
	name := whitespacePattern.ReplaceAllString(strings.ToLower(dishName), "-")
	return fallbackBaseURL + url.QueryEscape(name)
}
