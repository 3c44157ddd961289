package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/logmed")
	t.Setenv("PORT", "")
	t.Setenv("SESSION_TTL_HOURS", "")
	t.Setenv("DRAFT_MAX_IDLE_HOURS", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("TIMEZONE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port, got %q", cfg.Port)
	}
	if cfg.SessionTTL != 168*time.Hour || cfg.DraftMaxIdle != 12*time.Hour {
		t.Errorf("unexpected durations ttl=%v idle=%v", cfg.SessionTTL, cfg.DraftMaxIdle)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.DraftPurgeSchedule != "*/30 * * * *" {
		t.Errorf("unexpected purge schedule %q", cfg.DraftPurgeSchedule)
	}
	if cfg.Location == nil {
		t.Error("expected a location")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/logmed")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("DRAFT_MAX_IDLE_HOURS", "abc")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("TIMEZONE", "Not/AZone")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("expected 2h ttl, got %v", cfg.SessionTTL)
	}
	if cfg.DraftMaxIdle != 12*time.Hour {
		t.Errorf("expected invalid value to fall back, got %v", cfg.DraftMaxIdle)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.Location != time.UTC {
		t.Errorf("expected UTC fallback, got %v", cfg.Location)
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Error("expected error without DATABASE_URL")
	}
}
