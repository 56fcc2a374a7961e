// internal/workers/media/select-video/handler_test.go
package selectvideo

import (
	"context"
	"errors"
	"testing"
	"time"

	"cookmate-backend/internal/common/logger"
	"cookmate-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher returns canned candidates per locale and records the locales
// it was asked for.
type stubFetcher struct {
	byLocale map[string][]CandidateVideo
	errs     map[string]error
	calls    []string
	panics   bool
}

func (s *stubFetcher) FetchCandidates(_ context.Context, _ string, locale string) ([]CandidateVideo, error) {
	if s.panics {
		panic("malformed response shape")
	}
	s.calls = append(s.calls, locale)
	if err, ok := s.errs[locale]; ok {
		return nil, err
	}
	return s.byLocale[locale], nil
}

func newTestHandler(t *testing.T, cfg *Config, fetcher CandidateFetcher) *Handler {
	t.Helper()
	return &Handler{
		config:  cfg,
		fetcher: fetcher,
		logger:  logger.NewTestLogger(t),
		now:     func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.APIKey = "test-key"
	return cfg
}

func candidate(id, locale string, likes int64) CandidateVideo {
	return CandidateVideo{
		ID:              id,
		Title:           "Recipe " + id,
		PublishedAt:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		DurationSeconds: 600,
		ViewCount:       50000,
		LikeCount:       likes,
		Locale:          locale,
	}
}

func TestExecute_MissingCredentialFallsBack(t *testing.T) {
	cfg := DefaultConfig() // no API key
	h := newTestHandler(t, cfg, &stubFetcher{})

	out := h.Execute(context.Background(), &Input{SearchTerm: "masala dosa", PreferredLanguage: "Kannada"})

	require.NotNil(t, out)
	assert.Equal(t, models.SelectionSearchLink, out.Selection.Type)
	assert.Contains(t, out.Selection.Reason, "configuration absent")
	assert.Contains(t, out.Selection.URL, "masala+dosa+recipe+cooking")
}

func TestExecute_GlobalBestAcrossLocales(t *testing.T) {
	// The preferred locale yields a weaker candidate than the fallback
	// locale; the fallback locale's candidate must win anyway.
	fetcher := &stubFetcher{
		byLocale: map[string][]CandidateVideo{
			"kn": {candidate("weak", "kn", 100)},
			"en": {candidate("strong", "en", 1000000)},
		},
	}
	h := newTestHandler(t, testConfig(), fetcher)

	out := h.Execute(context.Background(), &Input{SearchTerm: "masala dosa", PreferredLanguage: "Kannada"})

	assert.Equal(t, models.SelectionDirectVideo, out.Selection.Type)
	assert.Equal(t, "strong", out.Selection.VideoID)
	// All locales were scanned, no early exit after the preferred locale.
	assert.Equal(t, []string{"kn", "kn-IN", "en"}, fetcher.calls)
}

func TestExecute_NoCandidatesFallsBack(t *testing.T) {
	fetcher := &stubFetcher{
		errs: map[string]error{
			"en":    errors.New("connection refused"),
			"en-US": errors.New("connection refused"),
		},
	}
	h := newTestHandler(t, testConfig(), fetcher)

	out := h.Execute(context.Background(), &Input{SearchTerm: "pav bhaji", PreferredLanguage: "English"})

	assert.Equal(t, models.SelectionSearchLink, out.Selection.Type)
	assert.Equal(t, "no suitable videos found", out.Selection.Reason)
	assert.Contains(t, out.Selection.URL, "pav+bhaji+recipe+cooking")
}

func TestExecute_TieKeepsFirstSeen(t *testing.T) {
	// Identical stats and a locale tag matching neither primary nor anything
	// else produce exactly equal scores; the candidate from the earlier
	// locale must be kept.
	fetcher := &stubFetcher{
		byLocale: map[string][]CandidateVideo{
			"en":    {candidate("first", "xx", 500)},
			"en-US": {candidate("second", "xx", 500)},
		},
	}
	h := newTestHandler(t, testConfig(), fetcher)

	out := h.Execute(context.Background(), &Input{SearchTerm: "pancakes", PreferredLanguage: "English"})

	assert.Equal(t, models.SelectionDirectVideo, out.Selection.Type)
	assert.Equal(t, "first", out.Selection.VideoID)
}

func TestExecute_PartialFailureStillSelects(t *testing.T) {
	fetcher := &stubFetcher{
		byLocale: map[string][]CandidateVideo{
			"en": {candidate("survivor", "en", 2000)},
		},
		errs: map[string]error{
			"kn":    errors.New("timeout"),
			"kn-IN": errors.New("timeout"),
		},
	}
	h := newTestHandler(t, testConfig(), fetcher)

	out := h.Execute(context.Background(), &Input{SearchTerm: "bisi bele bath", PreferredLanguage: "Kannada"})

	assert.Equal(t, models.SelectionDirectVideo, out.Selection.Type)
	assert.Equal(t, "survivor", out.Selection.VideoID)
}

func TestExecute_PanicConvertsToFallback(t *testing.T) {
	h := newTestHandler(t, testConfig(), &stubFetcher{panics: true})

	out := h.Execute(context.Background(), &Input{SearchTerm: "idli", PreferredLanguage: "Tamil"})

	require.NotNil(t, out)
	assert.Equal(t, models.SelectionSearchLink, out.Selection.Type)
	assert.Contains(t, out.Selection.Reason, "error:")
}

func TestExecute_CancelledContextReturnsFallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &stubFetcher{
		byLocale: map[string][]CandidateVideo{
			"en": {candidate("unreachable", "en", 2000)},
		},
	}
	h := newTestHandler(t, testConfig(), fetcher)

	out := h.Execute(ctx, &Input{SearchTerm: "omelette", PreferredLanguage: "English"})

	// No locale was scanned before the deadline, so the fallback applies.
	assert.Equal(t, models.SelectionSearchLink, out.Selection.Type)
	assert.Empty(t, fetcher.calls)
}
