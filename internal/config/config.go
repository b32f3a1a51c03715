// Package config loads runtime configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds runtime settings for the game.
type Config struct {
	Environment string
	LogLevel    slog.Level

	// RedisAddr is the address of the redis instance used for save slots.
	// Empty means saves are kept in memory only.
	RedisAddr string

	// Seed for random number generation. 0 means seed from the clock.
	Seed int64

	// TimeRate is how many in-game minutes pass per real-time second
	// while the overworld is active.
	TimeRate float64

	// StartZone is the zone loaded when a new game begins.
	StartZone string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		Seed:        parseInt64(getEnv("SEED", "0")),
		TimeRate:    parseFloat(getEnv("TIME_RATE", "0.5"), 0.5),
		StartZone:   getEnv("START_ZONE", "z_r1_chandrapur_town"),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseInt64(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseFloat(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
