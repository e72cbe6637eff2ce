package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Google Cloud
	ProjectID string

	// Server
	Port  string
	Debug bool

	// Authentication
	JWTSecret              string
	SessionExpiryHours     int
	AssertionExpirySeconds int

	// Google SSO
	GoogleClientID string

	// Cloud Storage
	ResumeBucketName string
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Google Cloud
		ProjectID: getEnv("PROJECT_ID", ""),

		// Server
		Port:  getEnv("PORT", "8080"),
		Debug: getEnvBool("DEBUG", false),

		// Authentication
		JWTSecret:              getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		SessionExpiryHours:     getEnvInt("SESSION_EXPIRY_HOURS", 24),
		AssertionExpirySeconds: getEnvInt("ASSERTION_EXPIRY_SECONDS", 300),

		// Google SSO
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),

		// Cloud Storage
		ResumeBucketName: getEnv("RESUME_BUCKET_NAME", ""),
	}

	return cfg
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	// ProjectID is required for Firestore
	if c.ProjectID == "" {
		return &ConfigError{Field: "PROJECT_ID", Message: "PROJECT_ID is required for Firestore"}
	}

	// The default JWT secret is only acceptable in debug mode
	if !c.Debug && c.JWTSecret == "your-secret-key-change-in-production" {
		return &ConfigError{Field: "JWT_SECRET", Message: "JWT_SECRET must be set in release mode"}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
