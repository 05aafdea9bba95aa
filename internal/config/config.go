package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config contains all runtime settings for the recommendation assistant.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	MetricsNamespace string
	AllowAnyOrigin   bool

	BackendBaseURL     string
	BackendTimeout     time.Duration
	BackendAnswerField string
	BreakerEnabled     bool

	ContextRefreshInterval time.Duration
	WeatherSummary         string
	LocationName           string

	DatabaseURL string

	LogLevel  string
	LogFormat string
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:         envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace: envOrDefault("APP_METRICS_NAMESPACE", "kinosovetnik"),
		AllowAnyOrigin:   false,

		BackendBaseURL: envOrDefault("BACKEND_BASE_URL", "http://localhost:5000"),
		// Known backend deployments disagree on the assistant text field
		// ("message" vs "response"); the default targets the common case.
		BackendAnswerField: envOrDefault("BACKEND_ANSWER_FIELD", "response"),

		WeatherSummary: envOrDefault("CONTEXT_WEATHER", "Солнечно, +15°C"),
		LocationName:   envOrDefault("CONTEXT_LOCATION", "Москва"),

		DatabaseURL: trimmedEnv("DATABASE_URL"),

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "json"),

		ShutdownTimeout:        15 * time.Second,
		BackendTimeout:         30 * time.Second,
		ContextRefreshInterval: time.Minute,
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.BackendTimeout, err = durationFromEnv("BACKEND_TIMEOUT", cfg.BackendTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.ContextRefreshInterval, err = durationFromEnv("APP_CONTEXT_REFRESH_INTERVAL", cfg.ContextRefreshInterval)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}
	cfg.BreakerEnabled, err = boolFromEnv("BACKEND_BREAKER_ENABLED", false)
	if err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.BackendBaseURL) == "" {
		return Config{}, fmt.Errorf("BACKEND_BASE_URL must not be empty")
	}
	if strings.TrimSpace(cfg.BackendAnswerField) == "" {
		return Config{}, fmt.Errorf("BACKEND_ANSWER_FIELD must not be empty")
	}
	if cfg.BackendTimeout < time.Second {
		return Config{}, fmt.Errorf("BACKEND_TIMEOUT must be at least 1s")
	}
	if cfg.ContextRefreshInterval < time.Second {
		return Config{}, fmt.Errorf("APP_CONTEXT_REFRESH_INTERVAL must be at least 1s")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func trimmedEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := trimmedEnv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(trimmedEnv(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
