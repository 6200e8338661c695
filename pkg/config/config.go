package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

const (
	defaultScheme           = "https"
	defaultLogLevel         = "info"
	defaultBatchConcurrency = 8
)

type Config struct {
	Scheme           string
	Host             string
	LogLevel         string
	BatchConcurrency int
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	concurrency := defaultBatchConcurrency
	if raw := os.Getenv("URLBUILD_BATCH_CONCURRENCY"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("URLBUILD_BATCH_CONCURRENCY must be an integer: %w", err)
		}
		concurrency = n
	}

	cfg := &Config{
		Scheme:           getEnv("URLBUILD_SCHEME", defaultScheme),
		Host:             os.Getenv("URLBUILD_HOST"),
		LogLevel:         getEnv("URLBUILD_LOG_LEVEL", defaultLogLevel),
		BatchConcurrency: concurrency,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Scheme == "" {
		return fmt.Errorf("URLBUILD_SCHEME is required")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("URLBUILD_LOG_LEVEL is invalid: %w", err)
	}
	if c.BatchConcurrency < 1 {
		return fmt.Errorf("URLBUILD_BATCH_CONCURRENCY must be at least 1")
	}
	// Host is optional, the CLI flag can provide it
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
