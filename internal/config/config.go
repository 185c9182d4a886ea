package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string

	// APIKey guards the serving surface; it is transport protection,
	// not user authentication.
	APIKey string

	// TrustedProxies are the proxy IPs whose X-Forwarded-For is believed
	TrustedProxies []string

	// Backend gateway settings
	BackendBaseURL string
	HTTPTimeout    time.Duration
	MaxRetries     int

	// Cache and sync settings
	FreshnessWindow  time.Duration
	AutoSyncInterval time.Duration
	AutoSyncEnabled  bool

	// Ambient identity for server-to-server calls that carry no explicit
	// user email. Empty means "not logged in".
	SessionEmail string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:      getEnv("LOG_FORMAT", DefaultLogFormat),
		ServiceName:    getEnv("SERVICE_NAME", DefaultServiceName),
		Version:        getEnv("SERVICE_VERSION", DefaultVersion),
		Environment:    getEnv("ENVIRONMENT", DefaultEnvironment),
		APIKey:         getEnv("API_KEY", ""),
		BackendBaseURL: getEnv("BACKEND_BASE_URL", ""),
		SessionEmail:   getEnv("SESSION_EMAIL", ""),
	}

	if raw := getEnv("TRUSTED_PROXIES", ""); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, trimmed)
			}
		}
	}

	port, err := getEnvInt("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	cfg.MaxRetries, err = getEnvInt("HTTP_MAX_RETRIES", DefaultMaxRetries)
	if err != nil {
		return nil, err
	}

	cfg.HTTPTimeout, err = getEnvDuration("HTTP_TIMEOUT", DefaultHTTPTimeout)
	if err != nil {
		return nil, err
	}

	cfg.FreshnessWindow, err = getEnvDuration("FRESHNESS_WINDOW", DefaultFreshnessWindow)
	if err != nil {
		return nil, err
	}

	cfg.AutoSyncInterval, err = getEnvDuration("AUTO_SYNC_INTERVAL", DefaultAutoSyncInterval)
	if err != nil {
		return nil, err
	}
	cfg.AutoSyncEnabled = getEnv("AUTO_SYNC_ENABLED", "true") == "true"

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if cfg.BackendBaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL environment variable must be set")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}
