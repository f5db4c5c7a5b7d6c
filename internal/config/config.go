package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP
	HTTPAddr      string
	PublicBaseURL string

	// Database
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Uploads
	UploadDir     string
	MaxUploadSize int64

	// Sessions
	SessionTTL time.Duration

	// Rate limiting
	RateLimitPerMinute int

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		HTTPAddr:           ":8080",
		PublicBaseURL:      "http://localhost:8080",
		UploadDir:          "./uploads",
		MaxUploadSize:      5 << 20,
		SessionTTL:         168 * time.Hour,
		RateLimitPerMinute: 120,
		LogLevel:           "info",
		RedisDB:            0,
	}

	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	}

	if baseURL := os.Getenv("PUBLIC_BASE_URL"); baseURL != "" {
		cfg.PublicBaseURL = strings.TrimRight(baseURL, "/")
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	} else {
		cfg.RedisAddr = "localhost:6379"
	}

	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		db, err := strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		cfg.UploadDir = dir
	}

	if size := os.Getenv("MAX_UPLOAD_SIZE"); size != "" {
		n, err := strconv.ParseInt(size, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE: %w", err)
		}
		cfg.MaxUploadSize = n
	}

	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = d
	}

	if limit := os.Getenv("RATE_LIMIT_PER_MINUTE"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
		}
		cfg.RateLimitPerMinute = n
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres DSN is empty")
	}

	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP address is empty")
	}

	if c.SessionTTL < time.Minute {
		return fmt.Errorf("session TTL too small: %v", c.SessionTTL)
	}

	if c.MaxUploadSize < 1 {
		return fmt.Errorf("max upload size must be positive")
	}

	if c.RateLimitPerMinute < 1 {
		return fmt.Errorf("rate limit per minute must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}
