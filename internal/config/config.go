// Package config resolves settings from the environment.
package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings shared by the CLI and the HTTP server
type Config struct {
	Address          string        // ATCUD_ADDRESS
	LogLevel         string        // ATCUD_LOG_LEVEL
	Format           string        // ATCUD_FORMAT
	Debug            bool          // ATCUD_DEBUG
	ReadTimeout      time.Duration // ATCUD_READ_TIMEOUT
	WriteTimeout     time.Duration // ATCUD_WRITE_TIMEOUT
	BatchConcurrency int           // ATCUD_BATCH_CONCURRENCY
	MaxBatchSize     int           // ATCUD_MAX_BATCH_SIZE
}

// Load resolves the configuration from environment variables.
// Variables from a .env file in the working directory are loaded first;
// variables already set in the environment take precedence.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Address:          getEnv("ATCUD_ADDRESS", ":8080"),
		LogLevel:         getEnv("ATCUD_LOG_LEVEL", "info"),
		Format:           getEnv("ATCUD_FORMAT", "json"),
		Debug:            getEnvAsBool("ATCUD_DEBUG", false),
		ReadTimeout:      getEnvAsDuration("ATCUD_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:     getEnvAsDuration("ATCUD_WRITE_TIMEOUT", 30*time.Second),
		BatchConcurrency: getEnvAsInt("ATCUD_BATCH_CONCURRENCY", 8),
		MaxBatchSize:     getEnvAsInt("ATCUD_MAX_BATCH_SIZE", 1000),
	}
}

// NewLogger builds a text logger writing to w at the named level.
// Unknown levels fall back to info.
func NewLogger(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// ParseLevel maps a level name to a slog level
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}
