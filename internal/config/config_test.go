package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	setCoreEnvEmpty(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BindAddr != ":8080" {
		t.Fatalf("BindAddr = %q, want %q", cfg.BindAddr, ":8080")
	}
	if cfg.BackendBaseURL != "http://localhost:5000" {
		t.Fatalf("BackendBaseURL = %q, want default", cfg.BackendBaseURL)
	}
	if cfg.BackendAnswerField != "response" {
		t.Fatalf("BackendAnswerField = %q, want %q", cfg.BackendAnswerField, "response")
	}
	if cfg.ContextRefreshInterval != time.Minute {
		t.Fatalf("ContextRefreshInterval = %v, want %v", cfg.ContextRefreshInterval, time.Minute)
	}
	if cfg.BreakerEnabled {
		t.Fatalf("BreakerEnabled = true, want false by default")
	}
	if cfg.DatabaseURL != "" {
		t.Fatalf("DatabaseURL = %q, want empty default", cfg.DatabaseURL)
	}
}

func TestLoadUsesExplicitBackendSettings(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("BACKEND_BASE_URL", "http://reco.internal:9000")
	t.Setenv("BACKEND_ANSWER_FIELD", "message")
	t.Setenv("BACKEND_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BackendBaseURL != "http://reco.internal:9000" {
		t.Fatalf("BackendBaseURL = %q, want explicit value", cfg.BackendBaseURL)
	}
	if cfg.BackendAnswerField != "message" {
		t.Fatalf("BackendAnswerField = %q, want %q", cfg.BackendAnswerField, "message")
	}
	if cfg.BackendTimeout != 5*time.Second {
		t.Fatalf("BackendTimeout = %v, want 5s", cfg.BackendTimeout)
	}
}

func TestLoadRejectsTooShortBackendTimeout(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("BACKEND_TIMEOUT", "100ms")

	if _, err := Load(); err == nil {
		t.Fatalf("Load() expected error for sub-second BACKEND_TIMEOUT")
	}
}

func TestLoadRejectsInvalidBool(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("BACKEND_BREAKER_ENABLED", "maybe")

	if _, err := Load(); err == nil {
		t.Fatalf("Load() expected error for invalid bool")
	}
}

func setCoreEnvEmpty(t *testing.T) {
	t.Helper()
	keys := []string{
		"APP_BIND_ADDR",
		"APP_SHUTDOWN_TIMEOUT",
		"APP_METRICS_NAMESPACE",
		"APP_ALLOW_ANY_ORIGIN",
		"APP_CONTEXT_REFRESH_INTERVAL",
		"BACKEND_BASE_URL",
		"BACKEND_TIMEOUT",
		"BACKEND_ANSWER_FIELD",
		"BACKEND_BREAKER_ENABLED",
		"CONTEXT_WEATHER",
		"CONTEXT_LOCATION",
		"DATABASE_URL",
		"LOG_LEVEL",
		"LOG_FORMAT",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}
