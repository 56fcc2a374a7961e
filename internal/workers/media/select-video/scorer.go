// internal/workers/media/select-video/scorer.go
package selectvideo

import (
	"math"
	"time"
)

// Scoring weights. Engagement dominates: the log10 transform keeps huge like
// counts from flattening every other signal while still strongly favoring
// well-liked videos.
const (
	likeWeight    = 10.0
	viewWeight    = 0.5
	recencyWeight = 0.1
	localeBonus   = 5.0

	idealDurationMin  = 300  // 5 minutes
	idealDurationMax  = 1200 // 20 minutes
	okDurationMin     = 180  // 3 minutes
	okDurationMax     = 1800 // 30 minutes
	idealDurationScore = 5.0
	okDurationScore    = 2.0
)

// Score computes the composite relevance score for a candidate. Deterministic:
// identical inputs and the same now always produce the same score.
func Score(c *CandidateVideo, primaryLocale string, now time.Time) float64 {
	score := engagementScore(c.LikeCount)
	score += reachScore(c.ViewCount)
	score += recencyScore(c.PublishedAt, now) * recencyWeight

	if c.Locale == primaryLocale {
		score += localeBonus
	}

	score += durationBonus(c.DurationSeconds)

	return score
}

func engagementScore(likes int64) float64 {
	if likes <= 0 {
		return 0
	}
	return math.Log10(float64(likes)) * likeWeight
}

func reachScore(views int64) float64 {
	if views <= 0 {
		return 0
	}
	return math.Log10(float64(views)) * viewWeight
}

// recencyScore decays from 100 to 0 over roughly five years and never goes
// negative.
func recencyScore(publishedAt, now time.Time) float64 {
	daysSince := now.Sub(publishedAt).Hours() / 24
	return math.Max(0, 100-(daysSince/365)*20)
}

func durationBonus(seconds int) float64 {
	switch {
	case seconds >= idealDurationMin && seconds <= idealDurationMax:
		return idealDurationScore
	case seconds >= okDurationMin && seconds <= okDurationMax:
		return okDurationScore
	default:
		return 0
	}
}
