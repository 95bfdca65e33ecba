// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	BotToken       string
	DBPath         string
	Env            string // development or production
	Port           string
	WebhookSecret  string
	WebhookDomain  string
	WebhookPath    string
	SessionTimeout time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		BotToken:       getEnv("TELEGRAM_BOT_TOKEN", ""),
		DBPath:         getEnv("DATABASE_PATH", "./data/profilebot.db"),
		Env:            getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		WebhookSecret:  getEnv("WEBHOOK_SECRET", ""),
		WebhookDomain:  getEnv("WEBHOOK_DOMAIN", ""),
		WebhookPath:    getEnv("WEBHOOK_PATH", "/webhook"),
		SessionTimeout: time.Duration(getEnvInt("SESSION_TIMEOUT_SECONDS", 600)) * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DATABASE_PATH cannot be empty")
	}
	if c.Env != "development" && c.Env != "production" {
		return fmt.Errorf("APP_ENV must be 'development' or 'production'")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if !strings.HasPrefix(c.WebhookPath, "/") {
		return fmt.Errorf("WEBHOOK_PATH must start with '/'")
	}
	if c.SessionTimeout < 0 {
		return fmt.Errorf("SESSION_TIMEOUT_SECONDS must be >= 0")
	}
	if c.IsProduction() {
		if c.WebhookSecret == "" {
			return fmt.Errorf("WEBHOOK_SECRET is required in production")
		}
		if c.WebhookDomain == "" {
			return fmt.Errorf("WEBHOOK_DOMAIN is required in production")
		}
	}
	return nil
}

// IsProduction returns true if running in production (webhook) mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// WebhookURL returns the full public webhook URL, or "" outside production.
func (c *Config) WebhookURL() string {
	if !c.IsProduction() {
		return ""
	}
	return fmt.Sprintf("https://%s%s", c.WebhookDomain, c.WebhookPath)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
