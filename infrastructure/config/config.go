package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// API client configuration
	APIBaseURL     string
	RequestTimeout time.Duration
	GraphDepth     int
	CredentialFile string

	// Dev server configuration
	ServerAddress string
	JWTSecret     string
	JWTIssuer     string

	// Environment
	Environment string
	LogLevel    string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		APIBaseURL:     getEnv("SOUNDMAP_API_URL", "http://localhost:8080"),
		RequestTimeout: time.Duration(getEnvInt("SOUNDMAP_TIMEOUT_MS", 15000)) * time.Millisecond,
		GraphDepth:     getEnvInt("SOUNDMAP_GRAPH_DEPTH", 2),
		CredentialFile: getEnv("SOUNDMAP_CREDENTIAL_FILE", defaultCredentialFile()),

		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTIssuer:     getEnv("JWT_ISSUER", "soundmap-dev"),

		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("SOUNDMAP_API_URL is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("SOUNDMAP_TIMEOUT_MS must be positive")
	}
	if c.GraphDepth < 1 || c.GraphDepth > 3 {
		return fmt.Errorf("SOUNDMAP_GRAPH_DEPTH must be between 1 and 3")
	}
	if c.Environment == "production" && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// defaultCredentialFile places the persisted credential next to the user's
// other app config; falls back to the working directory when the config
// dir cannot be resolved.
func defaultCredentialFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".soundmap-credentials.json"
	}
	return filepath.Join(dir, "soundmap", "credentials.json")
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
