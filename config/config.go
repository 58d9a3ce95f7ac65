// Package config handles loading and managing application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/contipay/contipay-go/contipay/core"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	Server ServerConfig

	// ContiPay credentials and endpoints
	ContiPay ContiPayConfig

	// Redis backing the reference guard
	Redis RedisConfig

	// Merchant backend receiving forwarded webhooks
	Merchant MerchantConfig

	// Security settings
	Security SecurityConfig

	// Logging
	Log LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string
	GinMode         string // "debug", "release", or "test"
	ShutdownTimeout time.Duration
}

// ContiPayConfig holds ContiPay API configuration.
type ContiPayConfig struct {
	APIKey     string
	APISecret  string
	Mode       string // "dev" or "live"
	Method     string // "direct" or "redirect"
	MerchantID int
	WebhookURL string
	SuccessURL string
	ErrorURL   string
	DevURL     string
	LiveURL    string
	Timeout    time.Duration
}

// RedisConfig holds Redis connection settings. An empty Addr disables the
// reference guard.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MerchantConfig holds the merchant callback settings. An empty CallbackURL
// disables forwarding.
type MerchantConfig struct {
	CallbackURL string
	APIKey      string
}

// SecurityConfig holds security-related configuration.
type SecurityConfig struct {
	WebhookSecret string // Shared secret for X-Contipay-Signature
	ServiceAPIKey string // Bearer token required on /api/v1
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
	Output string // stdout, stderr or a file path
	Caller bool
}

// Load reads configuration from environment variables.
// Returns a Config struct with all settings populated.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			GinMode:         getEnv("GIN_MODE", "debug"),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		ContiPay: ContiPayConfig{
			APIKey:     getEnv("CONTIPAY_API_KEY", ""),
			APISecret:  getEnv("CONTIPAY_API_SECRET", ""),
			Mode:       getEnv("CONTIPAY_MODE", "dev"),
			Method:     getEnv("CONTIPAY_METHOD", "direct"),
			MerchantID: getEnvInt("CONTIPAY_MERCHANT_ID", 0),
			WebhookURL: getEnv("CONTIPAY_WEBHOOK_URL", ""),
			SuccessURL: getEnv("CONTIPAY_SUCCESS_URL", ""),
			ErrorURL:   getEnv("CONTIPAY_ERROR_URL", ""),
			DevURL:     getEnv("CONTIPAY_DEV_URL", core.DefaultDevURL),
			LiveURL:    getEnv("CONTIPAY_LIVE_URL", core.DefaultLiveURL),
			Timeout:    getEnvDuration("CONTIPAY_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Merchant: MerchantConfig{
			CallbackURL: getEnv("MERCHANT_CALLBACK_URL", ""),
			APIKey:      getEnv("MERCHANT_API_KEY", ""),
		},
		Security: SecurityConfig{
			WebhookSecret: getEnv("CONTIPAY_WEBHOOK_SECRET", ""),
			ServiceAPIKey: getEnv("SERVICE_API_KEY", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
			Caller: getEnvBool("LOG_CALLER", false),
		},
	}
}

// Validate checks that required configuration values are set.
func (c *Config) Validate() error {
	if c.ContiPay.APIKey == "" {
		return fmt.Errorf("CONTIPAY_API_KEY is required")
	}
	if c.ContiPay.APISecret == "" {
		return fmt.Errorf("CONTIPAY_API_SECRET is required")
	}
	if c.ContiPay.MerchantID <= 0 {
		return fmt.Errorf("CONTIPAY_MERCHANT_ID must be a positive integer")
	}
	return nil
}

// getEnv retrieves an environment variable with a fallback default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as an integer with a fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvBool retrieves an environment variable as a boolean with a fallback.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvDuration retrieves an environment variable as a duration ("30s") with a fallback.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
