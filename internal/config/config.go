// Package config loads server configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the server configuration.
type Config struct {
	Addr    string `env:"ABSENSI_ADDR" envDefault:":8080"`
	DBPath  string `env:"ABSENSI_DB" envDefault:"absensi.db"`
	Env     string `env:"ABSENSI_ENV" envDefault:"development"`
	CSRFKey string `env:"ABSENSI_CSRF_KEY"`
	Year    int    `env:"ABSENSI_YEAR" envDefault:"2026"`
	// SeedPassword is the shared password of the fixed account table. The
	// default is deliberately simple for an internal tool; override it
	// before exposing the service.
	SeedPassword string `env:"ABSENSI_SEED_PASSWORD" envDefault:"123"`
}

// IsProduction reports whether the server runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads an optional .env file and parses configuration from
// environment variables.
// PRE: none
// POST: returns Config with defaults applied for unset variables
func Load() (Config, error) {
	// A missing .env file is fine; real env vars still apply.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
