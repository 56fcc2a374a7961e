// internal/workers/media/enrich-suggestion/config.go
package enrichsuggestion

import "time"

type Config struct {
	Timeout        time.Duration
	MaxConcurrency int
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:        30 * time.Second,
		MaxConcurrency: 4,
	}
}
