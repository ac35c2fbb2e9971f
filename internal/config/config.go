// Package config loads process-wide configuration from the
// environment. It is read once at startup and injected; nothing in
// this repository re-reads the environment after boot.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the full process configuration.
type Config struct {
	Address     string `env:"ADDRESS" envDefault:":8000"`
	APIPrefix   string `env:"API_PREFIX" envDefault:"/api"`
	ProjectName string `env:"PROJECT_NAME" envDefault:"ja5p"`
	Version     string `env:"VERSION" envDefault:"0.1.0"`

	Database  Database
	Auth      Auth
	Bootstrap Bootstrap
}

// Bootstrap optionally seeds a first admin account, since every other
// account has to be registered by an existing admin.
type Bootstrap struct {
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// Database holds storage connection settings.
type Database struct {
	Driver string `env:"DATABASE_DRIVER" envDefault:"sqlite"`
	DSN    string `env:"DATABASE_URL" envDefault:"file:ja5p.db?cache=shared"`
}

// Auth holds token signing settings. The signing key has no default:
// a missing key is a startup failure, never a per-request one.
type Auth struct {
	SigningKey    string `env:"SECRET_KEY,notEmpty"`
	SigningMethod string `env:"ALGORITHM" envDefault:"HS256"`
	TokenTTL      int    `env:"TOKEN_TTL_MINUTES" envDefault:"60"`
}

// TokenDuration returns the configured token lifetime.
func (a Auth) TokenDuration() time.Duration {
	return time.Duration(a.TokenTTL) * time.Minute
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the process cannot run with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("config: unsupported database driver %q", c.Database.Driver)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("config: token TTL must be positive, got %d", c.Auth.TokenTTL)
	}
	return nil
}
