package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kelasa/pawapay/client"
)

// Config holds all client configuration loaded from environment variables.
// All required fields are validated at load time to ensure fail-fast
// behavior.
type Config struct {
	// Credential and environment
	APIToken    string
	Environment client.Environment

	// Callback handling
	CallbackSecret string

	// Request signing
	SignRequests   bool
	SigningKeyPath string

	// Request policy
	Timeout        time.Duration
	MaxAttempts    int
	RetryBaseDelay time.Duration

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables and validates all
// required fields. Returns an error listing every problem found.
func Load() (*Config, error) {
	cfg := &Config{}
	var errs []error

	cfg.APIToken = os.Getenv("PAWAPAY_API_TOKEN")
	if cfg.APIToken == "" {
		errs = append(errs, fmt.Errorf("PAWAPAY_API_TOKEN is required"))
	}

	env := getEnvOrDefault("PAWAPAY_ENVIRONMENT", string(client.EnvironmentSandbox))
	switch client.Environment(env) {
	case client.EnvironmentSandbox, client.EnvironmentProduction:
		cfg.Environment = client.Environment(env)
	default:
		errs = append(errs, fmt.Errorf("PAWAPAY_ENVIRONMENT must be %q or %q, got %q",
			client.EnvironmentSandbox, client.EnvironmentProduction, env))
	}

	cfg.CallbackSecret = os.Getenv("PAWAPAY_CALLBACK_SECRET")

	signed, err := parseBool("PAWAPAY_SIGNED_REQUESTS", false)
	if err != nil {
		errs = append(errs, err)
	} else {
		cfg.SignRequests = signed
	}
	cfg.SigningKeyPath = os.Getenv("PAWAPAY_SIGNING_KEY_PATH")
	if cfg.SignRequests && cfg.SigningKeyPath == "" {
		errs = append(errs, fmt.Errorf("PAWAPAY_SIGNING_KEY_PATH is required when PAWAPAY_SIGNED_REQUESTS is enabled"))
	}

	timeout, err := parseDuration("PAWAPAY_TIMEOUT", "30s")
	if err != nil {
		errs = append(errs, err)
	} else {
		cfg.Timeout = timeout
	}

	maxAttempts, err := parseInt("PAWAPAY_MAX_RETRIES", 4)
	if err != nil {
		errs = append(errs, err)
	} else {
		cfg.MaxAttempts = maxAttempts
	}

	baseDelay, err := parseDuration("PAWAPAY_RETRY_BASE_DELAY", "500ms")
	if err != nil {
		errs = append(errs, err)
	} else {
		cfg.RetryBaseDelay = baseDelay
	}

	cfg.LogLevel = getEnvOrDefault("PAWAPAY_LOG_LEVEL", "info")

	if cfg.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("PAWAPAY_MAX_RETRIES must be at least 1"))
	}
	if cfg.Timeout < time.Second {
		errs = append(errs, fmt.Errorf("PAWAPAY_TIMEOUT must be at least 1 second"))
	}

	if len(errs) > 0 {
		return nil, &client.ConfigurationError{Problems: errs}
	}

	return cfg, nil
}

// MustLoad is like Load but panics if configuration is invalid. Useful for
// CLI initialization where misconfiguration should halt startup.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// ClientConfig converts the loaded configuration into the client package's
// Config, ready to hand to client.NewClient.
func (c *Config) ClientConfig() client.Config {
	return client.Config{
		APIToken:       c.APIToken,
		Environment:    c.Environment,
		CallbackSecret: c.CallbackSecret,
		SignRequests:   c.SignRequests,
		SigningKeyPath: c.SigningKeyPath,
		Timeout:        c.Timeout,
		MaxAttempts:    c.MaxAttempts,
		RetryBaseDelay: c.RetryBaseDelay,
	}
}

// getEnvOrDefault returns the environment variable value or a default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDuration parses a duration from an environment variable or uses a default.
func parseDuration(key, defaultValue string) (time.Duration, error) {
	value := getEnvOrDefault(key, defaultValue)
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, value, err)
	}
	return duration, nil
}

// parseInt parses an integer from an environment variable or uses a default.
func parseInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, value, err)
	}
	return result, nil
}

// parseBool parses a boolean from an environment variable or uses a default.
func parseBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	result, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q: %w", key, value, err)
	}
	return result, nil
}
