package config

import (
	"os"
	"testing"
	"time"

	"gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "test-key")
	t.Setenv("SERVER_PORT", "4000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DB.Driver != "postgres" {
		t.Errorf("expected postgres driver, got %q", cfg.DB.Driver)
	}
	if cfg.DB.ConnMaxLifetime != time.Hour {
		t.Errorf("expected 1h conn lifetime, got %s", cfg.DB.ConnMaxLifetime)
	}
	if cfg.JWT.ExpirationHours != 24 {
		t.Errorf("expected 24h expiry, got %d", cfg.JWT.ExpirationHours)
	}
	if cfg.Card.BizNumberMaxAttempts != 32 {
		t.Errorf("expected 32 attempts, got %d", cfg.Card.BizNumberMaxAttempts)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:4000" {
		t.Errorf("unexpected default origins: %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadRequiresSigningKey(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "")
	// envconfig treats an empty value as set, so unset it explicitly
	unsetForTest(t, "JWT_SIGNING_KEY")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT_SIGNING_KEY")
	}
}

func TestLoadOrigins(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "k")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("unexpected origins: %v", cfg.CORS.AllowedOrigins)
	}
}

func TestGormLogLevel(t *testing.T) {
	cases := map[string]logger.LogLevel{
		"silent": logger.Silent,
		"error":  logger.Error,
		"info":   logger.Info,
		"":       logger.Warn,
		"bogus":  logger.Warn,
	}
	for in, want := range cases {
		c := DBConfig{LogLevel: in}
		if got := c.GormLogLevel(); got != want {
			t.Errorf("%q: got %v want %v", in, got, want)
		}
	}
}

func unsetForTest(t *testing.T, key string) {
	t.Helper()
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset %s: %v", key, err)
	}
}
