package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string

	// Backend REST API
	BackendBaseURL string
	BackendToken   string
	RequestTimeout time.Duration

	// Poll intervals per data source
	WalletInterval    time.Duration
	ResourcesInterval time.Duration
	InventoryInterval time.Duration
	SessionsInterval  time.Duration
	ToolsInterval     time.Duration

	// Local persistence
	StoragePath string

	// API key protecting this daemon's own HTTP surface
	APIKey string
}

// Load loads the configuration from environment variables.
func Load() (*Config, error) {
	// Load .env if present; real env vars are fine too.
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		Environment:    getEnv("ENVIRONMENT", "dev"),
		BackendBaseURL: getEnv("BACKEND_BASE_URL", ""),
		BackendToken:   getEnv("BACKEND_TOKEN", ""),
		StoragePath:    getEnv("STORAGE_PATH", "minehub.db"),
		APIKey:         getEnv("API_KEY", ""),
	}

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	if cfg.RequestTimeout, err = getEnvDuration("REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.WalletInterval, err = getEnvDuration("WALLET_POLL_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ResourcesInterval, err = getEnvDuration("RESOURCES_POLL_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.InventoryInterval, err = getEnvDuration("INVENTORY_POLL_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.SessionsInterval, err = getEnvDuration("SESSIONS_POLL_INTERVAL", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.ToolsInterval, err = getEnvDuration("TOOLS_POLL_INTERVAL", time.Minute); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.BackendBaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL environment variable must be set")
	}
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY environment variable must be set for security")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value.
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
