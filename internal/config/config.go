// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Providers ProviderConfig
	Storage   StorageConfig
	Auth      AuthConfig
	Logging   LoggingConfig
	App       AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`

	// RateLimit is the allowed requests per second per client IP.
	RateLimit float64 `env:"SERVER_RATE_LIMIT" envDefault:"20"`
}

// ProviderConfig holds upstream travel-data provider settings.
type ProviderConfig struct {
	// FlightBaseURL is the flight-search endpoint base URL.
	FlightBaseURL string `env:"FLIGHT_BASE_URL" envDefault:"https://serpapi.com"`

	// FlightAPIKey authenticates flight searches.
	FlightAPIKey string `env:"FLIGHT_API_KEY"`

	// SearchAPIBaseURL is the secondary flight-search endpoint base URL.
	// Leave SearchAPIKey empty to run with the primary provider only.
	SearchAPIBaseURL string `env:"SEARCHAPI_BASE_URL" envDefault:"https://www.searchapi.io/api/v1"`

	// SearchAPIKey authenticates the secondary flight provider.
	SearchAPIKey string `env:"SEARCHAPI_KEY"`

	// HotelBaseURL is the hotel-search endpoint base URL.
	HotelBaseURL string `env:"HOTEL_BASE_URL" envDefault:"https://hotels4.p.rapidapi.com"`

	// HotelAPIKey is the RapidAPI key for the hotel provider.
	HotelAPIKey string `env:"HOTEL_API_KEY"`

	// GeonamesBaseURL is the GeoNames endpoint base URL.
	GeonamesBaseURL string `env:"GEONAMES_BASE_URL" envDefault:"https://secure.geonames.org"`

	// GeonamesUsername identifies this application to GeoNames.
	GeonamesUsername string `env:"GEONAMES_USERNAME" envDefault:"ulisses"`

	// SearchTimeout bounds each provider call at the transport boundary.
	SearchTimeout time.Duration `env:"PROVIDER_SEARCH_TIMEOUT" envDefault:"30s"`
}

// StorageConfig holds durable storage settings.
type StorageConfig struct {
	// DSN is the MySQL data source name for the simulations store.
	DSN string `env:"STORAGE_DSN" envDefault:"tripsim:tripsim@tcp(localhost:3306)/tripsim?charset=utf8mb4&parseTime=True&loc=Local"`
}

// AuthConfig holds token verification settings.
type AuthConfig struct {
	// JWTSecret verifies bearer tokens issued by the auth provider.
	JWTSecret string `env:"AUTH_JWT_SECRET" envDefault:"dev-secret"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Server.RateLimit <= 0 {
		return fmt.Errorf("SERVER_RATE_LIMIT must be positive")
	}
	if cfg.Providers.SearchTimeout <= 0 {
		return fmt.Errorf("PROVIDER_SEARCH_TIMEOUT must be positive")
	}
	if cfg.Providers.GeonamesUsername == "" {
		return fmt.Errorf("GEONAMES_USERNAME is required")
	}
	if cfg.Storage.DSN == "" {
		return fmt.Errorf("STORAGE_DSN is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
