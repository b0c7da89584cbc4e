package config

import (
	"errors"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Port != "8080" || cfg.SessionLifetime != 2*time.Hour || cfg.PasswordResetTTL != time.Hour {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.TokenSecret) != 64 {
		t.Fatalf("expected ephemeral hex secret, got %q", cfg.TokenSecret)
	}
	if cfg.DevAuthHeader {
		t.Fatalf("dev header must be off by default")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_TOKEN_SECRET", "s3cret")
	t.Setenv("FRONTEND_URL", "https://adopta.example/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.example/panel,https://adopta.example")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("GITHUB_CLIENT_ID", "id")
	t.Setenv("GITHUB_CLIENT_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.IsProduction() || cfg.TokenSecret != "s3cret" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.FrontendURL != "https://adopta.example" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.FrontendURL)
	}
	if cfg.SMTP.Port != 2525 {
		t.Fatalf("expected SMTP port from env, got %d", cfg.SMTP.Port)
	}
	if !cfg.GitHub.Enabled() || cfg.Google.Enabled() {
		t.Fatalf("expected only github enabled")
	}

	origins := cfg.AllowedOrigins()
	if len(origins) != 2 || origins[0] != "https://adopta.example" || origins[1] != "https://admin.example" {
		t.Fatalf("unexpected origins %v", origins)
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_TOKEN_SECRET", "")

	if _, err := Load(); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}
