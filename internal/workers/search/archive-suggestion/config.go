// internal/workers/search/archive-suggestion/config.go
package archivesuggestion

import "time"

type Config struct {
	Index   string
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Index:   "meal_suggestions",
		Timeout: 10 * time.Second,
	}
}
