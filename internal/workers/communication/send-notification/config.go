// internal/workers/communication/send-notification/config.go
package sendnotification

import "time"

type Config struct {
	AWSRegion    string
	FromEmail    string
	EmailEnabled bool
	SMSEnabled   bool
	Timeout      time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		AWSRegion:    "ap-south-1",
		FromEmail:    "no-reply@cookmate.app",
		EmailEnabled: true,
		SMSEnabled:   true,
		Timeout:      15 * time.Second,
	}
}
