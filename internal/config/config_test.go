package config

import (
	"testing"
	"time"
)

func TestLoad_RequiresPostgresDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error without POSTGRES_DSN, got nil")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost/hirehub")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.SessionTTL != 168*time.Hour {
		t.Errorf("SessionTTL = %v, want %v", cfg.SessionTTL, 168*time.Hour)
	}
	if cfg.MaxUploadSize != 5<<20 {
		t.Errorf("MaxUploadSize = %d, want %d", cfg.MaxUploadSize, 5<<20)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q, want %q", cfg.RedisAddr, "localhost:6379")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost/hirehub")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SESSION_TTL", "24h")
	t.Setenv("PUBLIC_BASE_URL", "https://hirehub.example.com/")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want %v", cfg.SessionTTL, 24*time.Hour)
	}
	if cfg.PublicBaseURL != "https://hirehub.example.com" {
		t.Errorf("PublicBaseURL = %q, trailing slash should be trimmed", cfg.PublicBaseURL)
	}
	if cfg.RateLimitPerMinute != 30 {
		t.Errorf("RateLimitPerMinute = %d, want 30", cfg.RateLimitPerMinute)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad redis db", "REDIS_DB", "not-a-number"},
		{"bad session ttl", "SESSION_TTL", "soon"},
		{"bad upload size", "MAX_UPLOAD_SIZE", "big"},
		{"bad rate limit", "RATE_LIMIT_PER_MINUTE", "lots"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv("POSTGRES_DSN", "postgres://localhost/hirehub")
			t.Setenv(c.key, c.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q expected error, got nil", c.key, c.value)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			HTTPAddr:           ":8080",
			PostgresDSN:        "postgres://localhost/hirehub",
			SessionTTL:         time.Hour,
			MaxUploadSize:      1 << 20,
			RateLimitPerMinute: 60,
			LogLevel:           "info",
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("Validate() on valid config returned error: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty dsn", func(c *Config) { c.PostgresDSN = "" }},
		{"empty addr", func(c *Config) { c.HTTPAddr = "" }},
		{"tiny session ttl", func(c *Config) { c.SessionTTL = time.Second }},
		{"zero upload size", func(c *Config) { c.MaxUploadSize = 0 }},
		{"zero rate limit", func(c *Config) { c.RateLimitPerMinute = 0 }},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := valid()
			c.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() expected error, got nil")
			}
		})
	}
}
