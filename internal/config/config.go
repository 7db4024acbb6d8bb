// Package config loads configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all server configuration.
type Config struct {
	// Server
	ListenAddr  string
	MetricsAddr string

	// Logging
	LogLevel  string
	LogFormat string

	// Catalog seed (empty = built-in demo catalog)
	SeedPath string

	// Upload directory (the standalone demo endpoints)
	UploadDir     string
	MaxUploadSize int64

	// Simulated delay before uploaded records land in the catalog
	UploadDelay time.Duration

	// Upload directory poll interval
	WatchInterval time.Duration
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:    envOr("LISTEN_ADDR", ":8080"),
		MetricsAddr:   envOr("METRICS_ADDR", ":9090"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		LogFormat:     envOr("LOG_FORMAT", "json"),
		SeedPath:      envOr("SEED_PATH", ""),
		UploadDir:     envOr("UPLOAD_DIR", "./uploads"),
		MaxUploadSize: envInt64("MAX_UPLOAD_SIZE", 10*1024*1024*1024), // 10 GiB default
		UploadDelay:   time.Duration(envInt("UPLOAD_DELAY_MS", 0)) * time.Millisecond,
		WatchInterval: time.Duration(envInt("WATCH_INTERVAL_SECONDS", 5)) * time.Second,
	}

	if cfg.MaxUploadSize <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return i
}
