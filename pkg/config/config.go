package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds roster engine configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string

	// Roster generation defaults
	MaxIterations         int
	RandomSeed            int64
	PreferredNightCount    int
	MaxFloaters            int
	MaxFloaterShiftsPerWeek float64

	// Output
	ReportPath   string // where warnings/stats reports are written, empty = stdout only
	StrictMode   bool   // treat any hard-rule violation as a fatal error instead of a warning
}

// Load reads configuration from environment variables, optionally loading a
// .env file first. Missing variables fall back to sane roster-engine defaults.
func Load() (*Config, error) {
	// Attempt to load .env file, ignore error if not found.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		MaxIterations:           getIntEnv("ROSTER_MAX_ITERATIONS", 500),
		RandomSeed:              getInt64Env("ROSTER_RANDOM_SEED", 0),
		PreferredNightCount:     getIntEnv("ROSTER_PREFERRED_NIGHT_COUNT", 3),
		MaxFloaters:             getIntEnv("ROSTER_MAX_FLOATERS", 2),
		MaxFloaterShiftsPerWeek: getFloatEnv("ROSTER_MAX_FLOATER_SHIFTS_PER_WEEK", 2.5),

		ReportPath: getEnv("ROSTER_REPORT_PATH", ""),
		StrictMode: getBoolEnv("ROSTER_STRICT_MODE", false),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

// getEnv returns the environment variable value or a default if unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv returns the environment variable parsed as an int, or a default.
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getInt64Env returns the environment variable parsed as an int64, or a default.
func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getFloatEnv returns the environment variable parsed as a float64, or a default.
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getDurationEnv returns the environment variable parsed as a duration, or a default.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getBoolEnv returns the environment variable parsed as a bool, or a default.
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
