package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort    int
	DatabasePath  string
	SessionTTL    time.Duration // absolute session lifetime, no refresh on activity
	BcryptCost    int
	SweepSchedule string // cron expression for the expired-session sweep
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	ttlStr := getEnv("SESSION_TTL", "1h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, err
	}

	costStr := getEnv("BCRYPT_COST", "12")
	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:    port,
		DatabasePath:  getEnv("DATABASE_PATH", "./webauth.db"),
		SessionTTL:    ttl,
		BcryptCost:    cost,
		SweepSchedule: getEnv("SESSION_SWEEP_SCHEDULE", "@every 15m"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
