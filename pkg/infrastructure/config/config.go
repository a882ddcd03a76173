// Package config loads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the server
type Config struct {
	// DatabaseDSN selects the store: a postgres:// URL or a sqlite path
	DatabaseDSN string
	JWTSecret   string
	ServerPort  string
	Environment string
	LogLevel    string

	DefaultHorizonWeeks   int
	SnapshotLookbackWeeks int
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; it never overrides variables
// already set in the environment.
func Load() *Config {
	// .env file is optional
	_ = godotenv.Load()

	return &Config{
		DatabaseDSN:           getEnv("DATABASE_DSN", "./replen.db?_journal_mode=WAL&_busy_timeout=5000"),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		ServerPort:            getEnv("PORT", "8080"),
		Environment:           getEnv("ENVIRONMENT", "development"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		DefaultHorizonWeeks:   getEnvInt("DEFAULT_HORIZON_WEEKS", 20),
		SnapshotLookbackWeeks: getEnvInt("SNAPSHOT_LOOKBACK_WEEKS", 8),
	}
}

// IsProduction reports whether the server runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}
