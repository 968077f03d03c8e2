// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Zachkp/portfolio/internal/contact"
)

// Config holds all application configuration.
type Config struct {
	Port        string
	ContentPath string // empty means the built-in content

	TrackingEnabled bool
	MetricsDB       string
	Retention       time.Duration

	SMTP contact.SMTPConfig

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string // bcrypt; wins over AdminPassword when set

	ContactRatePerMinute int
}

// Load reads the environment, falling back to development defaults.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		ContentPath: os.Getenv("CONTENT_PATH"),

		TrackingEnabled: getEnvBool("TRACKING_ENABLED", true),
		MetricsDB:       getEnv("METRICS_DB", "portfolio.db"),
		Retention:       time.Duration(getEnvInt("RETENTION_MONTHS", 12)) * 30 * 24 * time.Hour,

		SMTP: contact.SMTPConfig{
			Host: getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port: getEnv("SMTP_PORT", "587"),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			To:   os.Getenv("TO_EMAIL"),
		},

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		ContactRatePerMinute: getEnvInt("CONTACT_RATE_PER_MIN", 5),
	}
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("config error: PORT must not be empty")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("config error: PORT must be numeric, got %q", c.Port)
	}
	if c.TrackingEnabled && c.MetricsDB == "" {
		return fmt.Errorf("config error: METRICS_DB is required when tracking is enabled")
	}
	if c.Retention <= 0 {
		return fmt.Errorf("config error: RETENTION_MONTHS must be positive")
	}
	if c.ContactRatePerMinute <= 0 {
		return fmt.Errorf("config error: CONTACT_RATE_PER_MIN must be positive")
	}
	if c.SMTP.Enabled() && c.SMTP.To == "" {
		return fmt.Errorf("config error: TO_EMAIL is required when SMTP credentials are set")
	}
	if c.ContentPath != "" {
		if _, err := os.Stat(c.ContentPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: content file not found: %s", c.ContentPath)
		}
	}
	return nil
}

// AdminEnabled reports whether an admin password has been configured.
// Without one the admin area is not mounted.
func (c *Config) AdminEnabled() bool {
	return c.AdminPassword != "" || c.AdminPasswordHash != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "":
		return fallback
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
