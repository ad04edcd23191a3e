// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir            string // Base directory for the local databases (always absolute)
	Port               int
	LogLevel           string
	DevMode            bool
	AlphaVantageAPIKey string // "demo" when unset; the live price tier then falls through
	FMPAPIKey          string // "demo" when unset; the live ESG tier is skipped entirely
	RefreshSchedule    string // cron spec for the background price refresh, empty disables it
	InitialFundCash    float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Determine data directory:
	// 1. VERDANT_DATA_DIR environment variable
	// 2. Default to ./data
	// Always resolve to an absolute path and make sure it exists.
	dataDir := getEnv("VERDANT_DATA_DIR", "data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory to absolute path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}

	initialCash, err := strconv.ParseFloat(getEnv("VERDANT_INITIAL_FUND_CASH", "100000"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid VERDANT_INITIAL_FUND_CASH value: %w", err)
	}
	if initialCash <= 0 {
		return nil, fmt.Errorf("VERDANT_INITIAL_FUND_CASH must be positive, got %v", initialCash)
	}

	return &Config{
		DataDir:            absDataDir,
		Port:               port,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DevMode:            getEnv("DEV_MODE", "false") == "true",
		AlphaVantageAPIKey: getEnv("ALPHA_VANTAGE_API_KEY", "demo"),
		FMPAPIKey:          getEnv("FMP_API_KEY", "demo"),
		RefreshSchedule:    getEnv("VERDANT_REFRESH_SCHEDULE", "@every 15m"),
		InitialFundCash:    initialCash,
	}, nil
}

// getEnv retrieves an environment variable value, returning a fallback if the
// variable is not set or is empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
