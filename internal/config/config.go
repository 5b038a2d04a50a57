package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultAPIBaseURL     = "http://localhost:8000"
	defaultTimeoutSeconds = 15
)

// Config holds client settings read from the environment, optionally
// seeded from an env file. The backend host ships as configuration, not
// code.
type Config struct {
	APIBaseURL         string
	HTTPTimeoutSeconds int
	RequestsPerSecond  float64
}

// Load reads the env file at path (missing file is fine) and then the
// process environment.
func Load(path string) *Config {
	if strings.TrimSpace(path) != "" {
		_ = godotenv.Load(path)
	} else {
		_ = godotenv.Load()
	}

	return &Config{
		APIBaseURL:         getenv("MACROLOG_API_URL", defaultAPIBaseURL),
		HTTPTimeoutSeconds: getenvInt("MACROLOG_HTTP_TIMEOUT_SECONDS", defaultTimeoutSeconds),
		RequestsPerSecond:  getenvFloat("MACROLOG_REQUESTS_PER_SECOND", 5),
	}
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getenvFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}
