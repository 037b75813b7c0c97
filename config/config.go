package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPAddr           string        `env:"HTTP_ADDR" envDefault:":3000"`
	StoreDriver        string        `env:"STORE_DRIVER" envDefault:"memory"`
	DatabaseURL        string        `env:"DATABASE_URL"`
	SQLitePath         string        `env:"SQLITE_PATH" envDefault:"storm_sessions.db"`
	RedisAddr          string        `env:"REDIS_ADDR"`
	CacheTTL           time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	SlackSigningSecret string        `env:"SLACK_SIGNING_SECRET"`
	SeedData           bool          `env:"SEED_DATA" envDefault:"true"`
}

// LoadConfig loads configuration from environment variables
// It first tries to load from .env file, then falls back to system environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	return Parse()
}

// Parse reads the environment without touching .env files.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	switch c.StoreDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=%s", DriverPostgres)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when STORE_DRIVER=%s", DriverSQLite)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want memory, postgres or sqlite)", c.StoreDriver)
	}
	if c.RedisAddr != "" && c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL)
	}
	return nil
}
