// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/dividizky/internal/share"
)

type Config struct {
	// HTTP server
	Port            string
	StaticPath      string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration

	// Metrics server; "0" disables it
	MetricsPort string

	// Logging
	LogLevel  string
	LogFormat string

	// Share links
	ShareSecret string
	ShareTTL    time.Duration

	// Locale used when a request names none
	DefaultLocale string
}

// Load reads an optional .env file (or the files named in envFiles) and
// then the environment. Variables already set in the environment win over
// the file.
func Load(envFiles ...string) *Config {
	_ = godotenv.Load(envFiles...)

	return &Config{
		Port:            getEnv("PORT", "8080"),
		StaticPath:      getEnv("STATIC_PATH", ""),
		AllowedOrigins:  getEnvList("ALLOWED_ORIGINS", []string{"*"}),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),

		MetricsPort: getEnv("METRICS_PORT", "9090"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		ShareSecret: getEnv("SHARE_SECRET", ""),
		ShareTTL:    getEnvDuration("SHARE_TTL", 30*24*time.Hour),

		DefaultLocale: getEnv("DEFAULT_LOCALE", "es"),
	}
}

// MetricsEnabled reports whether the metrics server should run.
func (c *Config) MetricsEnabled() bool {
	return c.MetricsPort != "0"
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if err := validatePort(c.Port); err != nil {
		errors = append(errors, err.Error())
	}
	if c.MetricsEnabled() {
		if err := validatePort(c.MetricsPort); err != nil {
			errors = append(errors, "metrics: "+err.Error())
		} else if c.MetricsPort == c.Port {
			errors = append(errors, fmt.Sprintf("metrics port %s must differ from the server port", c.MetricsPort))
		}
	}

	if c.StaticPath != "" {
		if info, err := os.Stat(c.StaticPath); err != nil || !info.IsDir() {
			errors = append(errors, fmt.Sprintf("static path '%s' is not a directory", c.StaticPath))
		}
	}

	if len(c.AllowedOrigins) == 0 {
		errors = append(errors, "at least one allowed origin is required (use '*' to allow any)")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if len(c.ShareSecret) < share.MinSecretLength {
		errors = append(errors, fmt.Sprintf("SHARE_SECRET must be at least %d bytes", share.MinSecretLength))
	}
	if c.ShareTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid share TTL %v: must be at least 1 minute", c.ShareTTL))
	}

	if c.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func validatePort(value string) error {
	port, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid port '%s': must be a number", value)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
