// internal/bot/config.go
package bot

import "time"

type Config struct {
	BotToken       string
	APIBaseURL     string
	PollTimeout    int // seconds, long-poll window handed to getUpdates
	PollInterval   time.Duration
	RequestTimeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:     "https://api.telegram.org",
		PollTimeout:    30,
		PollInterval:   2 * time.Second,
		RequestTimeout: 90 * time.Second,
	}
}
