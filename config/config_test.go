package config

import (
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.Scheduling.MaxRuleDays != 366 {
		t.Errorf("MaxRuleDays = %d, want 366", cfg.Scheduling.MaxRuleDays)
	}
	if cfg.RateLimit.Window != time.Minute || !cfg.RateLimit.FailOpen {
		t.Errorf("unexpected rate limit defaults %+v", cfg.RateLimit)
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("SCHEDULING_MAX_RULE_DAYS", "90")
	t.Setenv("RATE_LIMIT_BOOKINGS", "3")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_FAIL_OPEN", "false")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.Scheduling.MaxRuleDays != 90 {
		t.Errorf("MaxRuleDays = %d, want 90", cfg.Scheduling.MaxRuleDays)
	}
	if cfg.RateLimit.Bookings != 3 || cfg.RateLimit.Window != 30*time.Second || cfg.RateLimit.FailOpen {
		t.Errorf("unexpected rate limit %+v", cfg.RateLimit)
	}
	if cfg.Redis.DB != 0 {
		t.Errorf("invalid int falls back to default, got %d", cfg.Redis.DB)
	}
}

func TestNewConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("RATE_LIMIT_WINDOW", "soon")
	if _, err := NewConfig(); err == nil {
		t.Fatal("expected error for malformed duration")
	}
}
