// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Database      DatabaseConfig     `mapstructure:"database"`
	APIs          APIsConfig         `mapstructure:"apis"`
	Auth          AuthConfig         `mapstructure:"auth"`
	Integrations  IntegrationConfig  `mapstructure:"integrations"`
	Logging       LoggingConfig      `mapstructure:"logging"`
	Notifications NotificationConfig `mapstructure:"notifications"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	BaseURL         string `mapstructure:"base_url"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // seconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // seconds; 0 keeps SSE streams open
	RequestTimeout  int    `mapstructure:"request_timeout"`  // seconds, non-streaming routes only
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
	GenerateRPS     int    `mapstructure:"generate_rps"`     // per-client token bucket refill
	GenerateBurst   int    `mapstructure:"generate_burst"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ElasticsearchConfig struct {
	Enabled   bool     `mapstructure:"enabled"`
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

// --- External API Configuration ---

// APIsConfig holds credentials and endpoints for external services. An empty
// YouTube key is a valid state: video selection degrades to search links.
type APIsConfig struct {
	Gemini  GeminiConfig  `mapstructure:"gemini"`
	YouTube YouTubeConfig `mapstructure:"youtube"`
}

type GeminiConfig struct {
	APIKey     string   `mapstructure:"api_key"`
	BaseURL    string   `mapstructure:"base_url"`
	Models     []string `mapstructure:"models"`
	Timeout    int      `mapstructure:"timeout"` // seconds
	MaxRetries int      `mapstructure:"max_retries"`
}

type YouTubeConfig struct {
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	MaxResults int    `mapstructure:"max_results"`
	Timeout    int    `mapstructure:"timeout"` // seconds
}

// --- Auth Configuration ---

type AuthConfig struct {
	SessionTTL    int    `mapstructure:"session_ttl"` // seconds
	CookieName    string `mapstructure:"cookie_name"`
	CookieSecure  bool   `mapstructure:"cookie_secure"`
	JWTSecret     string `mapstructure:"jwt_secret"`
	JWTTTLMinutes int    `mapstructure:"jwt_ttl_minutes"`
	BcryptCost    int    `mapstructure:"bcrypt_cost"`
}

// IntegrationConfig holds settings for AWS and the Telegram bot.
type IntegrationConfig struct {
	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			Enabled   bool   `mapstructure:"enabled"`
			FromEmail string `mapstructure:"from_email"`
		} `mapstructure:"ses"`
		SNS struct {
			Enabled            bool   `mapstructure:"enabled"`
			DefaultSMSSenderID string `mapstructure:"default_sms_sender_id"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`

	Telegram struct {
		Enabled      bool   `mapstructure:"enabled"`
		BotToken     string `mapstructure:"bot_token"`
		APIBaseURL   string `mapstructure:"api_base_url"`
		PollTimeout  int    `mapstructure:"poll_timeout"` // seconds, long-poll window
		PollInterval int    `mapstructure:"poll_interval"`
	} `mapstructure:"telegram"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type NotificationConfig struct {
	VerificationSubject string `mapstructure:"verification_subject"`
	SuggestionsReadySMS string `mapstructure:"suggestions_ready_sms"`
}
