package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	DatabasePath string `env:"DB_PATH" envDefault:"./data/application.db"`
	DatabaseURL  string `env:"DATABASE_URL"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogOutput string `env:"LOG_OUTPUT" envDefault:"pokemedquest.log"`

	ArtPath string `env:"ART_PATH" envDefault:"./assets/ascii_art"`
	NoColor bool   `env:"NO_COLOR"`
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()
	return Parse()
}

// Parse reads configuration from the current environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	dbType := strings.ToLower(cfg.DatabaseType)
	if dbType != "sqlite" && dbType != "sqlite3" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for database type %q", cfg.DatabaseType)
	}
	return cfg, nil
}
