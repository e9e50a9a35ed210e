package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort string

	APIBaseURL   string
	APITimeout   time.Duration
	HistoryLimit int

	SessionSecret      string
	SessionDuration    time.Duration
	SessionIdleTimeout time.Duration
	SweepInterval      time.Duration

	SubmitRateLimit  int
	SubmitRateWindow time.Duration

	LogLevel string
	LogFile  string

	TemplatesPath string
}

const defaultSessionSecret = "worddee-dev-secret-change-me"

// Load reads configuration from a .env file, if one exists, and the
// environment, with sensible defaults
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:    getEnv("PORT", "8080"),
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:8000/api"),
		SessionSecret: getEnv("SESSION_SECRET", defaultSessionSecret),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", ""),
		TemplatesPath: getEnv("TEMPLATES_PATH", ""),
	}

	var err error
	if cfg.APITimeout, err = getDuration("API_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.HistoryLimit, err = getInt("HISTORY_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.SessionDuration, err = getDuration("SESSION_DURATION", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SessionIdleTimeout, err = getDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = getDuration("SWEEP_INTERVAL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SubmitRateLimit, err = getInt("SUBMIT_RATE_LIMIT", 20); err != nil {
		return nil, err
	}
	if cfg.SubmitRateWindow, err = getDuration("SUBMIT_RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UsingDefaultSecret reports whether the session secret was left unset
func (c *Config) UsingDefaultSecret() bool {
	return c.SessionSecret == defaultSessionSecret
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("API_BASE_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute http(s) URL, got %q", c.APIBaseURL)
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET must not be empty")
	}
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.ServerPort)
	}
	return nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, n)
	}
	return n, nil
}
