package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	LogLevel       string
	LogFormat      string
	CatalogPath    string
	CatalogURL     string
	RefreshDelay   time.Duration
	DebounceWindow time.Duration
	Seed           int64
}

func loadConfig() (Config, error) {
	_ = godotenv.Load("config/local.env")

	refreshDelay, err := envDuration("REFRESH_DELAY", time.Second)
	if err != nil {
		return Config{}, err
	}
	debounceWindow, err := envDuration("DEBOUNCE_WINDOW", 300*time.Millisecond)
	if err != nil {
		return Config{}, err
	}

	seed := int64(1)
	if raw := os.Getenv("GENERATOR_SEED"); raw != "" {
		seed, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GENERATOR_SEED: %w", err)
		}
	}

	return Config{
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "text"),
		CatalogPath:    envOrDefault("CATALOG_PATH", "data/events.json"),
		CatalogURL:     os.Getenv("CATALOG_URL"),
		RefreshDelay:   refreshDelay,
		DebounceWindow: debounceWindow,
		Seed:           seed,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
