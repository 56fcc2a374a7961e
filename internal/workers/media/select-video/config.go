// internal/workers/media/select-video/config.go
package selectvideo

import "time"

type Config struct {
	// APIKey may legitimately be empty. The selector then skips fetching and
	// returns a search-link fallback for every query.
	APIKey     string
	BaseURL    string
	MaxResults int
	Timeout    time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "https://www.googleapis.com/youtube/v3",
		MaxResults: 10,
		Timeout:    10 * time.Second,
	}
}
