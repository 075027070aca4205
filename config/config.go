package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DBType      string `envconfig:"DB_TYPE" default:"postgres"`
	PostgresURL string `envconfig:"POSTGRES_URL"`
	MongoURL    string `envconfig:"MONGO_URL"`
	MongoDB     string `envconfig:"MONGO_DB" default:"zms"`
	Port        string `envconfig:"PORT" default:"8080"`

	// Production turns on HTTPS redirects behind a TLS-terminating proxy.
	Production bool `envconfig:"PRODUCTION" default:"false"`

	// SourceBaseURL is the booking system's REST API, used when DB_TYPE=http.
	SourceBaseURL string `envconfig:"SOURCE_BASE_URL"`
	SourceToken   string `envconfig:"SOURCE_TOKEN"`

	// RedisAddr enables the Redis preference store when set.
	RedisAddr   string        `envconfig:"REDIS_ADDR"`
	SettingsTTL time.Duration `envconfig:"SETTINGS_TTL" default:"0s"`

	LogFormat      string `envconfig:"LOG_FORMAT" default:"text"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"db/migrations"`

	ReportPageSize    int           `envconfig:"REPORT_PAGE_SIZE" default:"10000"`
	DefaultWHTPercent float64       `envconfig:"DEFAULT_WHT_PERCENT" default:"2"`
	ChromeTimeout     time.Duration `envconfig:"CHROME_TIMEOUT" default:"30s"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	SessionIdleTTL    time.Duration `envconfig:"SESSION_IDLE_TTL" default:"30m"`
	ExportRateLimit   int           `envconfig:"EXPORT_RATE_LIMIT" default:"10"`

	R2AccountID string `envconfig:"R2_ACCOUNT_ID"`
	R2AccessKey string `envconfig:"R2_ACCESS_KEY_ID"`
	R2SecretKey string `envconfig:"R2_SECRET_ACCESS_KEY"`
	R2Bucket    string `envconfig:"R2_BUCKET"`
	R2PublicURL string `envconfig:"R2_PUBLIC_URL"`
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using system environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DBType {
	case "postgres":
		if c.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required for DB_TYPE=postgres")
		}
	case "mongo":
		if c.MongoURL == "" {
			return fmt.Errorf("MONGO_URL is required for DB_TYPE=mongo")
		}
	case "http":
		if c.SourceBaseURL == "" {
			return fmt.Errorf("SOURCE_BASE_URL is required for DB_TYPE=http")
		}
	default:
		return fmt.Errorf("DB_TYPE %q not supported", c.DBType)
	}
	if c.ReportPageSize <= 0 {
		return fmt.Errorf("REPORT_PAGE_SIZE must be positive")
	}
	if c.ExportRateLimit <= 0 {
		return fmt.Errorf("EXPORT_RATE_LIMIT must be positive")
	}
	return nil
}

// R2Enabled reports whether export uploads are configured.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != "" && c.R2AccessKey != "" && c.R2SecretKey != "" && c.R2Bucket != ""
}

// NewLogger returns a slog.Logger writing text or JSON to stdout.
func NewLogger(cfg *Config) *slog.Logger {
	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
}
