package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	OutputDir string

	FilingsAPIBaseURL string
	FilingsAPIKey     string
	FilingsRateRPS    int

	// IdentityEmail identifies the caller to the statement host, which
	// requires an email address for polite access.
	IdentityEmail string

	HTTPTimeoutMs int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		FilingsAPIBaseURL: getEnv("FILINGS_API_BASE_URL", "https://services.last10k.com/v1"),
		FilingsAPIKey:     getEnv("FILINGS_API_KEY", ""),
		FilingsRateRPS:    getEnvInt("FILINGS_RATE_LIMIT_RPS", 5),

		IdentityEmail: getEnv("IDENTITY_EMAIL", ""),

		HTTPTimeoutMs: getEnvInt("HTTP_TIMEOUT_MS", 30000),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
