package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	LogLevel string `envconfig:"HDKEYGEN_LOG_LEVEL" default:"info"`
	LogDir   string `envconfig:"HDKEYGEN_LOG_DIR" default:"./logs"`

	// BatchWorkers bounds the batch worker pool. 0 means runtime.NumCPU().
	BatchWorkers int `envconfig:"HDKEYGEN_BATCH_WORKERS" default:"0"`
	MaxBatch     int `envconfig:"HDKEYGEN_MAX_BATCH" default:"10000"`

	Validate bool   `envconfig:"HDKEYGEN_VALIDATE" default:"true"`
	Output   string `envconfig:"HDKEYGEN_OUTPUT" default:"text"`
}

// Load reads configuration from .env file (if present) then from environment variables.
// Environment variables override .env values.
func Load() (*Config, error) {
	// godotenv does NOT override already-set env vars.
	envFiles := []string{".env"}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				slog.Warn("failed to load .env file", "file", f, "error", err)
			} else {
				slog.Debug("loaded .env file", "file", f)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := cfg.Check(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Check validates configuration values for correctness.
func (c *Config) Check() error {
	if c.BatchWorkers < 0 {
		return fmt.Errorf("%w: batch workers must be >= 0, got %d", ErrInvalidConfig, c.BatchWorkers)
	}
	if c.MaxBatch < 1 {
		return fmt.Errorf("%w: max batch must be >= 1, got %d", ErrInvalidConfig, c.MaxBatch)
	}
	if c.Output != OutputText && c.Output != OutputJSON {
		return fmt.Errorf("%w: output must be %q or %q, got %q", ErrInvalidConfig, OutputText, OutputJSON, c.Output)
	}
	return nil
}
