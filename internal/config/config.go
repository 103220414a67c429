// Package config provides configuration management for the CLI wiring.
// Engine behavior is always injectable explicitly; environment variables
// only set defaults for the calling layer.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	LogLevel           string // debug, info, warn, error
	PrettyLogs         bool
	SensitivityWorkers int // 0 = one per available core
}

// Load reads configuration from environment variables. A .env file in
// the working directory is honored if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:   getEnv("PROFORMA_LOG_LEVEL", "info"),
		PrettyLogs: getEnv("PROFORMA_PRETTY_LOGS", "true") == "true",
	}

	workers := getEnv("PROFORMA_SENSITIVITY_WORKERS", "0")
	n, err := strconv.Atoi(workers)
	if err != nil {
		return nil, fmt.Errorf("invalid PROFORMA_SENSITIVITY_WORKERS %q: %w", workers, err)
	}
	cfg.SensitivityWorkers = n

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
