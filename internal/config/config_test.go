package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.WebhookPath != "/webhook" {
		t.Errorf("WebhookPath = %q, want /webhook", cfg.WebhookPath)
	}
	if cfg.SessionTimeout != 10*time.Minute {
		t.Errorf("SessionTimeout = %v, want 10m", cfg.SessionTimeout)
	}
	if cfg.IsProduction() {
		t.Error("development config reports production")
	}
	if cfg.WebhookURL() != "" {
		t.Errorf("WebhookURL in development = %q, want empty", cfg.WebhookURL())
	}
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing token")
	}
	if !strings.Contains(err.Error(), "TELEGRAM_BOT_TOKEN") {
		t.Errorf("error does not name the missing variable: %v", err)
	}
}

func TestLoad_ProductionRequiresWebhook(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for production without webhook settings")
	}

	t.Setenv("WEBHOOK_SECRET", "s3cret")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for production without webhook domain")
	}

	t.Setenv("WEBHOOK_DOMAIN", "bot.example.org")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got, want := cfg.WebhookURL(), "https://bot.example.org/webhook"; got != want {
		t.Errorf("WebhookURL = %q, want %q", got, want)
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "staging")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown APP_ENV")
	}
}

func TestLoad_SessionTimeout(t *testing.T) {
	setRequired(t)
	t.Setenv("SESSION_TIMEOUT_SECONDS", "90")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SessionTimeout != 90*time.Second {
		t.Errorf("SessionTimeout = %v, want 90s", cfg.SessionTimeout)
	}

	// Unparsable values fall back to the default.
	t.Setenv("SESSION_TIMEOUT_SECONDS", "soon")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SessionTimeout != 10*time.Minute {
		t.Errorf("SessionTimeout fallback = %v, want 10m", cfg.SessionTimeout)
	}
}
