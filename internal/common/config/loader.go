// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like APIS_YOUTUBE_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, e.g. config.production.yaml
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig() // ignore error if not found

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideFromEnv(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries .env from several locations so binaries and tests can run
// from nested directories.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				fmt.Printf("✅ Loaded .env from: %s\n", path)
				return
			}
		}
	}

	fmt.Printf("⚠️  .env file not found in any location, using system environment variables\n")
}

// findProjectRoot walks up directories looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "cookmate-backend"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	if cfg.Server.GenerateRPS == 0 {
		cfg.Server.GenerateRPS = 1
	}
	if cfg.Server.GenerateBurst == 0 {
		cfg.Server.GenerateBurst = 3
	}

	if cfg.Database.Postgres.Host == "" {
		cfg.Database.Postgres.Host = "localhost"
	}
	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 20
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Redis.Address == "" {
		cfg.Database.Redis.Address = "localhost:6379"
	}
	if cfg.Database.Elasticsearch.Index == "" {
		cfg.Database.Elasticsearch.Index = "meal-suggestions"
	}

	if cfg.APIs.Gemini.BaseURL == "" {
		cfg.APIs.Gemini.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if len(cfg.APIs.Gemini.Models) == 0 {
		cfg.APIs.Gemini.Models = []string{
			"gemini-1.5-flash",
			"gemini-1.5-pro",
			"gemini-pro",
			"gemini-1.0-pro",
		}
	}
	if cfg.APIs.Gemini.Timeout == 0 {
		cfg.APIs.Gemini.Timeout = 60
	}
	if cfg.APIs.Gemini.MaxRetries == 0 {
		cfg.APIs.Gemini.MaxRetries = 2
	}
	if cfg.APIs.YouTube.BaseURL == "" {
		cfg.APIs.YouTube.BaseURL = "https://www.googleapis.com/youtube/v3"
	}
	if cfg.APIs.YouTube.MaxResults == 0 {
		cfg.APIs.YouTube.MaxResults = 10
	}
	if cfg.APIs.YouTube.Timeout == 0 {
		cfg.APIs.YouTube.Timeout = 10
	}

	if cfg.Auth.SessionTTL == 0 {
		cfg.Auth.SessionTTL = 7 * 24 * 3600
	}
	if cfg.Auth.CookieName == "" {
		cfg.Auth.CookieName = "cookmate_session"
	}
	if cfg.Auth.JWTTTLMinutes == 0 {
		cfg.Auth.JWTTTLMinutes = 30
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = 12
	}

	if cfg.Integrations.AWS.Region == "" {
		cfg.Integrations.AWS.Region = "us-east-1"
	}
	if cfg.Integrations.Telegram.APIBaseURL == "" {
		cfg.Integrations.Telegram.APIBaseURL = "https://api.telegram.org"
	}
	if cfg.Integrations.Telegram.PollTimeout == 0 {
		cfg.Integrations.Telegram.PollTimeout = 30
	}
	if cfg.Integrations.Telegram.PollInterval == 0 {
		cfg.Integrations.Telegram.PollInterval = 1
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

// overrideFromEnv picks up the flat env var names the deployment uses when the
// viper key path was not set.
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && cfg.APIs.Gemini.APIKey == "" {
		cfg.APIs.Gemini.APIKey = v
	}
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" && cfg.APIs.YouTube.APIKey == "" {
		cfg.APIs.YouTube.APIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" && cfg.Integrations.Telegram.BotToken == "" {
		cfg.Integrations.Telegram.BotToken = v
		cfg.Integrations.Telegram.Enabled = true
	}
	if v := os.Getenv("JWT_SECRET"); v != "" && cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" && cfg.Database.Postgres.Password == "" {
		cfg.Database.Postgres.Password = v
	}
}

func validateConfig(cfg *Config) error {
	if cfg.APIs.Gemini.APIKey == "" {
		return fmt.Errorf("gemini api key is required")
	}
	// YouTube key intentionally not required: absence routes selection to the
	// search-link fallback instead of failing startup.
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if cfg.Database.Postgres.Database == "" {
		return fmt.Errorf("postgres database name is required")
	}
	return nil
}
