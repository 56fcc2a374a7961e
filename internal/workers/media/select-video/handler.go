// internal/workers/media/select-video/handler.go
package selectvideo

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"time"

	"cookmate-backend/internal/common/errors"
	"cookmate-backend/internal/common/logger"
	"cookmate-backend/internal/common/metrics"
	"cookmate-backend/internal/models"
)

const (
	TaskType = "select-video"

	// querySuffix biases the index toward cooking tutorials regardless of how
	// the generative model phrased the search term.
	querySuffix = " recipe cooking"
)

// Handler selects the single best video for a search query. It drives the
// fetch-and-score loop across every resolved locale, keeps the global best
// candidate, and degrades to a search-link result when the index is
// unavailable, unconfigured, or returns nothing useful. It never returns an
// error: every invocation yields a usable selection.
type Handler struct {
	config  *Config
	fetcher CandidateFetcher
	logger  logger.Logger
	now     func() time.Time
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		fetcher: NewFetcher(config, log),
		logger:  log.With(map[string]interface{}{"taskType": TaskType}),
		now:     time.Now,
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (output *Output) {
	start := h.now()

	// The selection contract forbids propagating anything to the caller, so
	// even a panic from an unexpected response shape becomes a fallback.
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("video selection panicked", map[string]interface{}{
				"searchTerm": input.SearchTerm,
				"panic":      fmt.Sprint(r),
			})
			metrics.VideoSelections.WithLabelValues("search_link_error").Inc()
			output = &Output{Selection: h.searchLinkFallback(input.SearchTerm, fmt.Sprintf("error: %v", r))}
		}
		metrics.TaskDuration.WithLabelValues(TaskType).Observe(h.now().Sub(start).Seconds())
	}()

	if h.config.APIKey == "" {
		cfgErr := errors.NewConfigurationAbsentError("video index credential missing")
		h.logger.Warn("video index credential not configured, falling back to search link", map[string]interface{}{
			"searchTerm": input.SearchTerm,
			"error":      cfgErr.Error(),
		})
		metrics.VideoSelections.WithLabelValues("search_link_no_key").Inc()
		return &Output{Selection: h.searchLinkFallback(input.SearchTerm, "configuration absent: "+cfgErr.Details)}
	}

	query := input.SearchTerm + querySuffix
	codes := ResolveLanguageCodes(input.PreferredLanguage)
	primaryLocale := codes[0]

	// Fix the reference time once so scoring is deterministic across the
	// whole invocation.
	now := h.now().UTC()

	var best *ScoredCandidate
	bestScore := math.Inf(-1)

	// Every locale is scanned even after a strong match in the preferred one:
	// a later locale's higher-scoring candidate can still win. Strict >
	// keeps the first-seen candidate on exact score ties.
	for _, locale := range codes {
		if ctx.Err() != nil {
			h.logger.Warn("video selection deadline reached, using best so far", map[string]interface{}{
				"searchTerm": input.SearchTerm,
				"locale":     locale,
			})
			break
		}

		candidates, err := h.fetcher.FetchCandidates(ctx, query, locale)
		if err != nil {
			h.logger.Warn("video search failed for locale", map[string]interface{}{
				"locale": locale,
				"error":  err.Error(),
			})
			continue
		}

		for i := range candidates {
			score := Score(&candidates[i], primaryLocale, now)
			if score > bestScore {
				bestScore = score
				best = &ScoredCandidate{CandidateVideo: candidates[i], Score: score}
			}
		}
	}

	if best == nil {
		h.logger.Info("no suitable videos found, falling back to search link", map[string]interface{}{
			"searchTerm": input.SearchTerm,
			"locales":    codes,
		})
		metrics.VideoSelections.WithLabelValues("search_link_no_candidates").Inc()
		return &Output{Selection: h.searchLinkFallback(input.SearchTerm, "no suitable videos found")}
	}

	h.logger.Info("video selected", map[string]interface{}{
		"searchTerm": input.SearchTerm,
		"videoId":    best.ID,
		"locale":     best.Locale,
		"score":      best.Score,
	})
	metrics.VideoSelections.WithLabelValues("direct_video").Inc()
	metrics.TasksCompleted.WithLabelValues(TaskType).Inc()

	return &Output{Selection: models.VideoSelection{
		Type:         models.SelectionDirectVideo,
		VideoID:      best.ID,
		URL:          "https://www.youtube.com/watch?v=" + best.ID,
		Title:        best.Title,
		ChannelTitle: best.ChannelTitle,
		PublishedAt:  best.PublishedAt.Format(time.RFC3339),
		Thumbnail:    best.Thumbnail,
		Description:  best.Description,
		Language:     best.Locale,
		ViewCount:    best.ViewCount,
		LikeCount:    best.LikeCount,
		Score:        best.Score,
	}}
}

func (h *Handler) searchLinkFallback(term, reason string) models.VideoSelection {
	return models.VideoSelection{
		Type:   models.SelectionSearchLink,
		URL:    "https://www.youtube.com/results?search_query=" + url.QueryEscape(term+querySuffix),
		Title:  fmt.Sprintf("Search: %s recipe", term),
		Reason: reason,
	}
}
