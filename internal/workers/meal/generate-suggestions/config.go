// internal/workers/meal/generate-suggestions/config.go
package generatesuggestions

import "time"

type Config struct {
	APIKey     string
	BaseURL    string
	Models     []string
	Timeout    time.Duration
	MaxRetries int
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL: "https://generativelanguage.googleapis.com/v1beta",
		Models: []string{
			"gemini-1.5-flash",
			"gemini-1.5-pro",
			"gemini-pro",
			"gemini-1.0-pro",
		},
		Timeout:    90 * time.Second,
		MaxRetries: 2,
	}
}
