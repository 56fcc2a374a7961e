// internal/workers/media/select-video/models.go
package selectvideo

import (
	"time"

	"cookmate-backend/internal/models"
)

type Input struct {
	SearchTerm        string `json:"searchTerm"`
	PreferredLanguage string `json:"preferredLanguage"`
}

type Output struct {
	Selection models.VideoSelection `json:"selection"`
}

// CandidateVideo is one video returned by the index for a query/locale,
// after its detail record has been fetched. Ephemeral: candidates live only
// within a single selector invocation.
type CandidateVideo struct {
	ID              string
	Title           string
	ChannelTitle    string
	PublishedAt     time.Time
	Thumbnail       string
	Description     string
	DurationSeconds int
	ViewCount       int64
	LikeCount       int64
	Locale          string
}

// ScoredCandidate pairs a candidate with its composite relevance score.
type ScoredCandidate struct {
	CandidateVideo
	Score float64
}
