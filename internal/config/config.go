// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rcastro/fundwise/internal/modules/advisor"
)

// Config holds application configuration
type Config struct {
	DataDir  string // Base directory for the database (always absolute)
	Port     int
	LogLevel string
	DevMode  bool

	// Engine defaults; individual requests may override them.
	Advisor advisor.Config

	// Contribution bounds enforced at the API boundary, never inside the
	// engine.
	MinContribution float64
	MaxContribution float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("FUNDWISE_DATA_DIR", "./data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:  absDataDir,
		Port:     getEnvAsInt("FUNDWISE_PORT", 8010),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DevMode:  getEnvAsBool("DEV_MODE", false),
		Advisor: advisor.Config{
			WeightImbalance:       getEnvAsFloat("ADVISOR_WEIGHT_IMBALANCE", 70),
			WeightDiscount:        getEnvAsFloat("ADVISOR_WEIGHT_DISCOUNT", 30),
			MaxFundsLimit:         getEnvAsInt("ADVISOR_MAX_FUNDS", 0),
			SequentialAllocation:  getEnvAsBool("ADVISOR_SEQUENTIAL", true),
			ImbalanceTolerancePct: getEnvAsFloat("ADVISOR_TOLERANCE_PCT", 1.0),
		},
		MinContribution: getEnvAsFloat("MIN_CONTRIBUTION", 1),
		MaxContribution: getEnvAsFloat("MAX_CONTRIBUTION", 1_000_000),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	if err := c.Advisor.Validate(); err != nil {
		return fmt.Errorf("advisor defaults: %w", err)
	}
	if c.MinContribution <= 0 {
		return fmt.Errorf("MIN_CONTRIBUTION must be positive, got %.2f", c.MinContribution)
	}
	if c.MaxContribution < c.MinContribution {
		return fmt.Errorf("MAX_CONTRIBUTION %.2f below MIN_CONTRIBUTION %.2f", c.MaxContribution, c.MinContribution)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
