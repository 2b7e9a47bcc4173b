package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr     string        `env:"LISTEN_ADDR" envDefault:":8080"`
	DBPath         string        `env:"DB_PATH" envDefault:"/data/lookbook.db"`
	CatalogPath    string        `env:"CATALOG_PATH"`
	AssetPath      string        `env:"ASSET_PATH" envDefault:"/data/assets"`
	ThumbSize      uint          `env:"THUMB_SIZE" envDefault:"300"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFile        string        `env:"LOG_FILE"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"json"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	SweepInterval  time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`
	AdminClicks    int           `env:"ADMIN_CLICKS" envDefault:"3"`
	AdminWindow    time.Duration `env:"ADMIN_WINDOW" envDefault:"2s"`
	InsightBackend string        `env:"INSIGHT_BACKEND" envDefault:"static"`
	ClaudeAPIKey   string        `env:"CLAUDE_API_KEY"`
	ClaudeModel    string        `env:"CLAUDE_MODEL" envDefault:"claude-3-5-haiku-latest"`
	ClaudeBaseURL  string        `env:"CLAUDE_BASE_URL"`
	TestMode       bool          `env:"LOOKBOOK_TEST_MODE"`
}

// Load reads the configuration from the environment. Variables from the file
// named by LOOKBOOK_ENV_FILE (default .env) are added first without overriding
// anything already set; a missing file is fine.
func Load() (*Config, error) {
	envFile := os.Getenv("LOOKBOOK_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.InsightBackend {
	case "static", "claude":
	default:
		return fmt.Errorf("unknown INSIGHT_BACKEND %q", c.InsightBackend)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q", c.LogFormat)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", c.SweepInterval)
	}
	return nil
}
