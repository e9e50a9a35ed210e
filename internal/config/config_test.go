package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "API_BASE_URL", "API_TIMEOUT", "HISTORY_LIMIT", "SESSION_SECRET",
		"SESSION_DURATION", "SESSION_IDLE_TIMEOUT", "SWEEP_INTERVAL",
		"SUBMIT_RATE_LIMIT", "SUBMIT_RATE_WINDOW", "LOG_LEVEL", "LOG_FILE", "TEMPLATES_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, 5, cfg.HistoryLimit)
	assert.Equal(t, 24*time.Hour, cfg.SessionDuration)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, 5*time.Minute, cfg.SweepInterval)
	assert.Equal(t, 20, cfg.SubmitRateLimit)
	assert.Equal(t, time.Minute, cfg.SubmitRateWindow)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.UsingDefaultSecret())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_BASE_URL", "https://api.example.com/v1")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("HISTORY_LIMIT", "10")
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "https://api.example.com/v1", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.False(t, cfg.UsingDefaultSecret())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "relative base url", key: "API_BASE_URL", value: "/api"},
		{name: "non-http base url", key: "API_BASE_URL", value: "ftp://example.com"},
		{name: "bad duration", key: "API_TIMEOUT", value: "soon"},
		{name: "negative duration", key: "SESSION_IDLE_TIMEOUT", value: "-1m"},
		{name: "bad int", key: "HISTORY_LIMIT", value: "five"},
		{name: "zero limit", key: "SUBMIT_RATE_LIMIT", value: "0"},
		{name: "bad port", key: "PORT", value: "http"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
