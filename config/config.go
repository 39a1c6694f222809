package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"csrf-hub/internal/domain"
)

// MinCSRFSecretLength is the minimum accepted signing secret length in
// bytes. A shorter secret is a fatal configuration error: the process
// must not serve unsafe-method traffic with a weak or absent secret.
const MinCSRFSecretLength = 32

// Config holds the application configuration
type Config struct {
	Port              string        // Service port
	KratosURL         string        // Kratos frontend API URL
	SessionCookieName string        // Session identifier cookie name
	CacheTTL          time.Duration // Session cache TTL
	CSRFSecret        string        // Signing secret for CSRF token derivation
	AuthSharedSecret  string        // Shared secret for internal endpoints
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	config := &Config{
		Port:              getEnv("PORT", "8890"),
		KratosURL:         getEnv("KRATOS_URL", "http://kratos:4433"),
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "ory_kratos_session"),
		CacheTTL:          5 * time.Minute, // Default 5 minutes
		CSRFSecret:        getEnv("CSRF_SECRET", ""),
		AuthSharedSecret:  getEnv("AUTH_SHARED_SECRET", ""),
	}

	// Parse CACHE_TTL if provided
	if cacheTTLStr := os.Getenv("CACHE_TTL"); cacheTTLStr != "" {
		duration, err := time.ParseDuration(cacheTTLStr)
		if err != nil {
			return nil, fmt.Errorf("invalid CACHE_TTL format: %w", err)
		}
		config.CacheTTL = duration
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks if the configuration is valid. The CSRF secret is a
// startup invariant, never a per-request error.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	if c.KratosURL == "" {
		return fmt.Errorf("KRATOS_URL cannot be empty")
	}

	if c.SessionCookieName == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME cannot be empty")
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}

	if c.CSRFSecret == "" {
		return fmt.Errorf("CSRF_SECRET is required: %w", domain.ErrCSRFSecretMissing)
	}

	if len(c.CSRFSecret) < MinCSRFSecretLength {
		return fmt.Errorf("CSRF_SECRET must be at least %d bytes: %w", MinCSRFSecretLength, domain.ErrCSRFSecretTooShort)
	}

	return nil
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
