// internal/workers/media/select-video/fetcher.go
package selectvideo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cookmate-backend/internal/common/errors"
	"cookmate-backend/internal/common/httpclient"
	"cookmate-backend/internal/common/logger"
)

// CandidateFetcher is the boundary the selector mocks in tests.
type CandidateFetcher interface {
	FetchCandidates(ctx context.Context, term, locale string) ([]CandidateVideo, error)
}

// Fetcher queries the video index: one search call per locale, then one
// detail call per hit for statistics and duration.
type Fetcher struct {
	config *Config
	client *httpclient.Client
	logger logger.Logger
}

func NewFetcher(config *Config, log logger.Logger) *Fetcher {
	return &Fetcher{
		config: config,
		client: httpclient.NewClient(config.Timeout),
		logger: log.With(map[string]interface{}{"component": "video-fetcher"}),
	}
}

// searchResponse mirrors the index's search endpoint payload.
type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet snippet `json:"snippet"`
	} `json:"items"`
}

type snippet struct {
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
	Description  string `json:"description"`
	Thumbnails   struct {
		Medium struct {
			URL string `json:"url"`
		} `json:"medium"`
		Default struct {
			URL string `json:"url"`
		} `json:"default"`
	} `json:"thumbnails"`
}

// detailResponse mirrors the index's videos endpoint payload. Counts arrive
// as decimal strings.
type detailResponse struct {
	Items []struct {
		Snippet    snippet `json:"snippet"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
			LikeCount string `json:"likeCount"`
		} `json:"statistics"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// FetchCandidates returns the scored-candidate pool for one locale. Hits
// whose detail record cannot be fetched are dropped silently; a failure of
// the search call itself is returned so the selector can log it and move to
// the next locale.
func (f *Fetcher) FetchCandidates(ctx context.Context, term, locale string) ([]CandidateVideo, error) {
	searchURL := f.buildSearchURL(term, locale)

	resp, err := f.client.Get(ctx, searchURL)
	if err != nil {
		return nil, errors.NewVideoSearchFailedError(locale, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewVideoSearchFailedError(locale, fmt.Errorf("video index search returned %d", resp.StatusCode))
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, errors.NewMalformedResponseError("video index search", err)
	}

	candidates := make([]CandidateVideo, 0, len(search.Items))
	for _, item := range search.Items {
		if item.ID.VideoID == "" {
			continue
		}
		candidate, ok := f.fetchDetail(ctx, item.ID.VideoID, item.Snippet, locale)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

// fetchDetail fetches statistics and content metadata for one hit. The bool
// result makes the skip-on-missing-detail contract explicit.
func (f *Fetcher) fetchDetail(ctx context.Context, videoID string, searchSnippet snippet, locale string) (CandidateVideo, bool) {
	detailURL := f.buildDetailURL(videoID)

	resp, err := f.client.Get(ctx, detailURL)
	if err != nil {
		f.logger.Warn("video detail fetch failed", map[string]interface{}{
			"videoId": videoID,
			"error":   errors.NewVideoDetailFailedError(videoID, err).Error(),
		})
		return CandidateVideo{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.Warn("video detail fetch failed", map[string]interface{}{
			"videoId": videoID,
			"status":  resp.StatusCode,
			"error":   errors.NewVideoDetailFailedError(videoID, fmt.Errorf("status %d", resp.StatusCode)).Error(),
		})
		return CandidateVideo{}, false
	}

	var detail detailResponse
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		f.logger.Warn("video detail decode failed", map[string]interface{}{
			"videoId": videoID,
			"error":   errors.NewVideoDetailFailedError(videoID, err).Error(),
		})
		return CandidateVideo{}, false
	}

	if len(detail.Items) == 0 {
		return CandidateVideo{}, false
	}
	item := detail.Items[0]

	publishedAt, err := time.Parse(time.RFC3339, searchSnippet.PublishedAt)
	if err != nil {
		publishedAt = time.Time{}
	}

	thumbnail := searchSnippet.Thumbnails.Medium.URL
	if thumbnail == "" {
		thumbnail = searchSnippet.Thumbnails.Default.URL
	}

	return CandidateVideo{
		ID:              videoID,
		Title:           searchSnippet.Title,
		ChannelTitle:    searchSnippet.ChannelTitle,
		PublishedAt:     publishedAt,
		Thumbnail:       thumbnail,
		Description:     searchSnippet.Description,
		DurationSeconds: ParseISODuration(item.ContentDetails.Duration),
		ViewCount:       parseCount(item.Statistics.ViewCount),
		LikeCount:       parseCount(item.Statistics.LikeCount),
		Locale:          locale,
	}, true
}

func (f *Fetcher) buildSearchURL(term, locale string) string {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("maxResults", strconv.Itoa(f.config.MaxResults))
	params.Set("q", term)
	params.Set("type", "video")
	params.Set("order", "relevance")
	params.Set("relevanceLanguage", locale)
	params.Set("key", f.config.APIKey)
	return f.config.BaseURL + "/search?" + params.Encode()
}

func (f *Fetcher) buildDetailURL(videoID string) string {
	params := url.Values{}
	params.Set("part", "statistics,snippet,contentDetails")
	params.Set("id", videoID)
	params.Set("key", f.config.APIKey)
	return f.config.BaseURL + "/videos?" + params.Encode()
}

func parseCount(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
