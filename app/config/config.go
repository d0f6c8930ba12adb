package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the dashboard gateway
type Config struct {
	// Server
	Port     string `yaml:"port"`
	Host     string `yaml:"host"`
	LogLevel string `yaml:"log_level"`

	// Database (credential store)
	DatabaseURL      string `yaml:"database_url"`
	DatabaseHost     string `yaml:"db_host"`
	DatabasePort     string `yaml:"db_port"`
	DatabaseName     string `yaml:"db_name"`
	DatabaseUser     string `yaml:"db_user"`
	DatabasePassword string `yaml:"db_password"`
	DatabaseSSLMode  string `yaml:"db_ssl_mode"`

	// Analytics service
	AnalyticsURL     string        `yaml:"analytics_url"`
	AnalyticsTimeout time.Duration `yaml:"analytics_timeout"`

	// Sessions
	SessionDuration   time.Duration `yaml:"session_duration"`
	SessionCookieName string        `yaml:"session_cookie_name"`
	CookieSecure      bool          `yaml:"cookie_secure"`

	// Browser client
	CORSOrigin string `yaml:"cors_origin"`
}

// Load reads configuration from an optional YAML file (CONFIG_FILE) with
// environment variables taking precedence.
func Load() (*Config, error) {
	config := &Config{
		Port:              "3000",
		Host:              "0.0.0.0",
		LogLevel:          "info",
		DatabaseHost:      "localhost",
		DatabasePort:      "5432",
		DatabaseName:      "dashboard",
		DatabaseUser:      "dashboard",
		DatabaseSSLMode:   "disable",
		AnalyticsURL:      "http://localhost:8000",
		AnalyticsTimeout:  15 * time.Second,
		SessionDuration:   24 * time.Hour,
		SessionCookieName: "dashboard_session",
		CORSOrigin:        "http://localhost:5173",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.loadFile(path); err != nil {
			return nil, err
		}
	}

	// Server configuration
	config.Port = getEnvOrDefault("PORT", config.Port)
	config.Host = getEnvOrDefault("HOST", config.Host)
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", config.LogLevel)

	// Database configuration
	config.DatabaseURL = getEnvOrDefault("DATABASE_URL", config.DatabaseURL)
	config.DatabaseHost = getEnvOrDefault("DB_HOST", config.DatabaseHost)
	config.DatabasePort = getEnvOrDefault("DB_PORT", config.DatabasePort)
	config.DatabaseName = getEnvOrDefault("DB_NAME", config.DatabaseName)
	config.DatabaseUser = getEnvOrDefault("DB_USER", config.DatabaseUser)
	config.DatabasePassword = getEnvOrDefault("DB_PASSWORD", config.DatabasePassword)
	config.DatabaseSSLMode = getEnvOrDefault("DB_SSL_MODE", config.DatabaseSSLMode)

	// Analytics configuration
	config.AnalyticsURL = getEnvOrDefault("ANALYTICS_URL", config.AnalyticsURL)

	var err error
	if timeoutStr := os.Getenv("ANALYTICS_TIMEOUT"); timeoutStr != "" {
		config.AnalyticsTimeout, err = time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid ANALYTICS_TIMEOUT: %w", err)
		}
	}

	// Session configuration
	if durationStr := os.Getenv("SESSION_DURATION"); durationStr != "" {
		config.SessionDuration, err = time.ParseDuration(durationStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_DURATION: %w", err)
		}
	}
	config.SessionCookieName = getEnvOrDefault("SESSION_COOKIE_NAME", config.SessionCookieName)
	config.CookieSecure = getBoolEnv("COOKIE_SECURE", config.CookieSecure)

	// CORS configuration
	config.CORSOrigin = getEnvOrDefault("CORS_ORIGIN", config.CORSOrigin)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFile overlays configuration from a YAML file.
func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(c); err != nil {
		return fmt.Errorf("failed to decode config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if c.AnalyticsURL == "" {
		return fmt.Errorf("analytics URL is required")
	}

	if c.AnalyticsTimeout < time.Second {
		return fmt.Errorf("analytics timeout must be at least 1 second, got: %v", c.AnalyticsTimeout)
	}

	if c.SessionDuration < time.Minute {
		return fmt.Errorf("session duration must be at least 1 minute, got: %v", c.SessionDuration)
	}

	if c.SessionCookieName == "" {
		return fmt.Errorf("session cookie name is required")
	}

	return nil
}

// DatabaseDSN returns the Postgres connection string, preferring an
// explicit DATABASE_URL over the component fields.
func (c *Config) DatabaseDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
