package config_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rezonia/atcud-qr/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"ATCUD_ADDRESS", "ATCUD_LOG_LEVEL", "ATCUD_FORMAT", "ATCUD_DEBUG",
		"ATCUD_READ_TIMEOUT", "ATCUD_WRITE_TIMEOUT", "ATCUD_BATCH_CONCURRENCY", "ATCUD_MAX_BATCH_SIZE",
	} {
		t.Setenv(key, "")
	}

	cfg := config.Load()
	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Format)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 8, cfg.BatchConcurrency)
	assert.Equal(t, 1000, cfg.MaxBatchSize)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ATCUD_ADDRESS", ":9090")
	t.Setenv("ATCUD_LOG_LEVEL", "debug")
	t.Setenv("ATCUD_FORMAT", "table")
	t.Setenv("ATCUD_DEBUG", "true")
	t.Setenv("ATCUD_READ_TIMEOUT", "5s")
	t.Setenv("ATCUD_WRITE_TIMEOUT", "1m")
	t.Setenv("ATCUD_BATCH_CONCURRENCY", "2")
	t.Setenv("ATCUD_MAX_BATCH_SIZE", "10")

	cfg := config.Load()
	assert.Equal(t, ":9090", cfg.Address)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "table", cfg.Format)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, time.Minute, cfg.WriteTimeout)
	assert.Equal(t, 2, cfg.BatchConcurrency)
	assert.Equal(t, 10, cfg.MaxBatchSize)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("ATCUD_DEBUG", "maybe")
	t.Setenv("ATCUD_READ_TIMEOUT", "soon")
	t.Setenv("ATCUD_BATCH_CONCURRENCY", "many")

	cfg := config.Load()
	assert.False(t, cfg.Debug)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 8, cfg.BatchConcurrency)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, config.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, config.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, config.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, config.ParseLevel("verbose"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := config.NewLogger("warn", &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
