package config

import (
	"errors"
	"fmt"
	"time"

	"go-simpler.org/env"
)

const (
	DefaultSheetID    = "1TlLFTgMX3CnDiMWqAugMcB3g9tofgI7VlPK2IPZCZpo"
	DefaultOutputFile = "output.csv"
	DefaultIDColumn   = "Clip # (.0)"
	DefaultURLColumn  = "Link to comments"
	DefaultUserAgent  = "decisions-bot/0.1"
)

var (
	ErrMissingClientID     = errors.New("REDDIT_CLIENT_ID is required")
	ErrMissingClientSecret = errors.New("REDDIT_CLIENT_SECRET is required")
)

type Config struct {
	AppEnv   string `env:"APP_ENV" default:"dev"`
	LogLevel string `env:"LOG_LEVEL" default:"info"`

	RedditClientID     string `env:"REDDIT_CLIENT_ID"`
	RedditClientSecret string `env:"REDDIT_CLIENT_SECRET"`
	RedditUserAgent    string `env:"REDDIT_USER_AGENT" default:"decisions-bot/0.1"`
	RedditMaxRetries   int    `env:"REDDIT_MAX_RETRIES" default:"5"`

	// Empty endpoints fall back to reddit's public API.
	RedditAuthURL string `env:"REDDIT_AUTH_URL"`
	RedditAPIURL  string `env:"REDDIT_API_URL"`

	// InputFile takes precedence over SheetID when set.
	SheetID    string `env:"SHEET_ID" default:"1TlLFTgMX3CnDiMWqAugMcB3g9tofgI7VlPK2IPZCZpo"`
	InputFile  string `env:"INPUT_FILE"`
	OutputFile string `env:"OUTPUT_FILE" default:"output.csv"`
	IDColumn   string `env:"ID_COLUMN" default:"Clip # (.0)"`
	URLColumn  string `env:"URL_COLUMN" default:"Link to comments"`

	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" default:"30s"`
}

// Load reads the configuration from the environment. Malformed values are
// errors. Credentials are not checked here so command-line flags can still
// fill them in; call Validate once flags are parsed.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if cfg.RedditMaxRetries < 1 {
		return nil, fmt.Errorf("REDDIT_MAX_RETRIES must be at least 1, got %d", cfg.RedditMaxRetries)
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", cfg.HTTPTimeout)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.RedditClientID == "" {
		return ErrMissingClientID
	}
	if c.RedditClientSecret == "" {
		return ErrMissingClientSecret
	}
	return nil
}
