package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.BusinessTimezone != "Europe/Oslo" {
		t.Errorf("expected default timezone Europe/Oslo, got %s", cfg.BusinessTimezone)
	}
	if cfg.SlotIntervalMinutes != 15 {
		t.Errorf("expected 15-minute slot interval, got %d", cfg.SlotIntervalMinutes)
	}
	if cfg.SameDayLeadMinutes != 30 {
		t.Errorf("expected 30-minute lead time, got %d", cfg.SameDayLeadMinutes)
	}
	if cfg.BookingWindowDays != 9 {
		t.Errorf("expected 9-day booking window, got %d", cfg.BookingWindowDays)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BUSINESS_TIMEZONE", "Europe/Berlin")
	t.Setenv("SLOT_CACHE_TTL", "30s")
	t.Setenv("SLOT_CACHE_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.BusinessTimezone != "Europe/Berlin" {
		t.Errorf("expected Europe/Berlin, got %s", cfg.BusinessTimezone)
	}
	if cfg.SlotCacheTTL != 30*time.Second {
		t.Errorf("expected 30s cache TTL, got %s", cfg.SlotCacheTTL)
	}
	if cfg.SlotCacheEnabled {
		t.Error("expected slot cache disabled")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestGetEnvAsIntIgnoresGarbage(t *testing.T) {
	t.Setenv("BOOKING_WINDOW_DAYS", "not-a-number")

	cfg := Load()

	if cfg.BookingWindowDays != 9 {
		t.Errorf("expected fallback to 9, got %d", cfg.BookingWindowDays)
	}
}
