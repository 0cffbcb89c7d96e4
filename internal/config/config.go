package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// Outbound collaborator roots. Overridable mainly for tests.
	GeocodingBaseURL   string
	ForecastBaseURL    string
	GeolocationBaseURL string

	// HTTPTimeout bounds every outbound request.
	HTTPTimeout time.Duration

	// StatePath is the SQLite file holding the persisted widget state.
	StatePath string

	// RefreshInterval controls the background card refresh;
	// RefreshTimeout bounds a single refresh pass.
	RefreshInterval time.Duration
	RefreshTimeout  time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.GeocodingBaseURL = getenvDefault("GEOCODING_BASE_URL", "https://geocoding-api.open-meteo.com")
	cfg.ForecastBaseURL = getenvDefault("FORECAST_BASE_URL", "https://api.open-meteo.com")
	cfg.GeolocationBaseURL = getenvDefault("GEOLOCATION_BASE_URL", "http://ip-api.com")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.StatePath = getenvDefault("STATE_PATH", "widget.db")

	intervalStr := getenvDefault("REFRESH_INTERVAL", "30m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	refreshTimeoutStr := getenvDefault("REFRESH_TIMEOUT", "2m")
	refreshTimeout, err := time.ParseDuration(refreshTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_TIMEOUT: %w", err)
	}
	cfg.RefreshTimeout = refreshTimeout

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
