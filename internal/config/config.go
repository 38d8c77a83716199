package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"ledger-assistant/internal/logger"
)

// Config holds runtime configuration for both the chat client and the server.
type Config struct {
	// Client side.
	APIBaseURL     string        `envconfig:"API_BASE_URL" default:"http://127.0.0.1:5001"`
	GatewayTimeout time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"0s"`
	RedisAddr      string        `envconfig:"REDIS_ADDR"`
	PrefsPath      string        `envconfig:"PREFS_PATH" default:".ledger-prefs.json"`
	DownloadDir    string        `envconfig:"DOWNLOAD_DIR" default:"."`
	TimeZone       string        `envconfig:"TIMEZONE" default:"Asia/Kolkata"`
	PageSize       int           `envconfig:"PAGE_SIZE" default:"20"`
	OTPMode        string        `envconfig:"OTP_MODE" default:"mock"`

	// Server side.
	ServerAddr         string `envconfig:"SERVER_ADDR" default:":5001"`
	DatabaseURL        string `envconfig:"DATABASE_URL"`
	AllowedOrigins     string `envconfig:"ALLOWED_ORIGINS"`
	RateLimitPerMinute int    `envconfig:"RATE_LIMIT_PER_MINUTE" default:"30"`
	OpenAIAPIKey       string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel        string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	GotenbergURL       string `envconfig:"GOTENBERG_URL" default:"http://127.0.0.1:3000"`

	DocumentAIProject   string `envconfig:"DOCUMENT_AI_PROJECT"`
	DocumentAILocation  string `envconfig:"DOCUMENT_AI_LOCATION" default:"us"`
	DocumentAIProcessor string `envconfig:"DOCUMENT_AI_PROCESSOR_ID"`
	GoogleCredentials   string `envconfig:"GOOGLE_CREDENTIALS"`
	GoogleCredsFile     string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`

	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat     string `envconfig:"LOG_FORMAT" default:"console"`
	LogTimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02T15:04:05Z07:00"`
	LogOutput     string `envconfig:"LOG_OUTPUT" default:"stderr"`
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	return &cfg, nil
}

// ValidateClient checks the settings the chat client cannot run without.
func (c *Config) ValidateClient() error {
	if c.APIBaseURL == "" {
		return errors.New("API_BASE_URL is required")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.OTPMode != "mock" {
		return fmt.Errorf("OTP_MODE %q is not supported (only \"mock\")", c.OTPMode)
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("TIMEZONE: %w", err)
	}
	return nil
}

// ValidateServer checks the settings the backend cannot run without.
func (c *Config) ValidateServer() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMinute)
	}
	return nil
}

// Location resolves TimeZone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DocumentAIEnabled reports whether invoice ingestion can be wired.
func (c *Config) DocumentAIEnabled() bool {
	return c.DocumentAIProject != "" && c.DocumentAIProcessor != ""
}

// GetLoggerConfig maps the log settings onto logger.LogConfig.
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}
