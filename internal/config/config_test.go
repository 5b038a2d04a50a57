package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/emres/macrolog/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MACROLOG_API_URL", "")
	t.Setenv("MACROLOG_HTTP_TIMEOUT_SECONDS", "")
	t.Setenv("MACROLOG_REQUESTS_PER_SECOND", "")

	cfg := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Fatalf("unexpected default base url: %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeoutSeconds != 15 {
		t.Fatalf("unexpected default timeout: %d", cfg.HTTPTimeoutSeconds)
	}
	if cfg.RequestsPerSecond != 5 {
		t.Fatalf("unexpected default rate: %v", cfg.RequestsPerSecond)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	// godotenv never overrides variables already in the environment, so
	// these must be genuinely unset. t.Setenv registers the restore.
	for _, key := range []string{"MACROLOG_API_URL", "MACROLOG_HTTP_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	envPath := filepath.Join(t.TempDir(), ".env")
	content := "MACROLOG_API_URL=https://api.example.com\nMACROLOG_HTTP_TIMEOUT_SECONDS=30\n"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg := config.Load(envPath)
	if cfg.APIBaseURL != "https://api.example.com" {
		t.Fatalf("env file base url not applied: %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeoutSeconds != 30 {
		t.Fatalf("env file timeout not applied: %d", cfg.HTTPTimeoutSeconds)
	}
}

func TestLoadEnvOverridesAndBadValues(t *testing.T) {
	t.Setenv("MACROLOG_API_URL", "https://staging.example.com")
	t.Setenv("MACROLOG_HTTP_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("MACROLOG_REQUESTS_PER_SECOND", "-1")

	cfg := config.Load("")
	if cfg.APIBaseURL != "https://staging.example.com" {
		t.Fatalf("process env must win: %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeoutSeconds != 15 {
		t.Fatalf("bad timeout must fall back: %d", cfg.HTTPTimeoutSeconds)
	}
	if cfg.RequestsPerSecond != 5 {
		t.Fatalf("non-positive rate must fall back: %v", cfg.RequestsPerSecond)
	}
}
