// Package config loads application configuration from the environment,
// with optional .env file support for local development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store selects the persistence backend.
type Store string

const (
	StorePostgres Store = "postgres"
	StoreMemory   Store = "memory"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     string

	Store       Store
	DatabaseURL string

	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnLifetime time.Duration

	ShutdownTimeout  time.Duration
	RequestTimeout   time.Duration
	AuditHistorySize int
}

// Load reads configuration from environment variables and a .env file
// if one is present. Environment variables win over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE", string(StorePostgres))
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DB_MAX_CONN_LIFETIME", "1h")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("AUDIT_HISTORY_SIZE", 100)
	v.AutomaticEnv()

	cfg := &Config{
		Port:             v.GetString("PORT"),
		IsProduction:     v.GetBool("IS_PRODUCTION"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		Store:            Store(v.GetString("STORE")),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		DBMaxConns:       v.GetInt32("DB_MAX_CONNS"),
		DBMinConns:       v.GetInt32("DB_MIN_CONNS"),
		AuditHistorySize: v.GetInt("AUDIT_HISTORY_SIZE"),
	}

	var err error
	if cfg.DBMaxConnLifetime, err = parseDuration(v, "DB_MAX_CONN_LIFETIME"); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDuration(v, "SHUTDOWN_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = parseDuration(v, "REQUEST_TIMEOUT"); err != nil {
		return nil, err
	}

	switch cfg.Store {
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when STORE=postgres")
		}
	case StoreMemory:
	default:
		return nil, fmt.Errorf("unknown STORE %q (expected postgres or memory)", cfg.Store)
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
