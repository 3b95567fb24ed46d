package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"library-api/internal/infrastructure/database"
)

// validate checks the driver selection. PostgreSQL pool settings are only read,
// and checked, by LoadDatabaseConfig once the postgres driver is chosen.
func (d DatabaseConfig) validate() error {
	switch d.Driver {
	case DriverPostgres:
		return nil
	case DriverSQLite:
		if d.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must be set when DB_DRIVER=%s", DriverSQLite)
		}
		return nil
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", d.Driver, DriverPostgres, DriverSQLite)
	}
}

// LoadDatabaseConfig reads the PostgreSQL pool settings from environment variables.
// Every malformed value is reported, not just the first.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	var env envParser

	cfg := &database.DBConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     env.int("DB_PORT", 5432),
		Username: getEnv("DB_USER", "library"),
		Password: getEnv("DB_PASSWORD", "secret"),
		DBName:   getEnv("DB_NAME", "library_dev"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),

		MaxConns:          int32(env.int("DB_MAX_CONNECTIONS", 25)),
		MinConns:          int32(env.int("DB_MIN_CONNECTIONS", 5)),
		MaxConnLifetime:   env.duration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
		MaxConnIdleTime:   env.duration("DB_MAX_CONN_IDLE_TIME", time.Minute),
		HealthCheckPeriod: env.duration("DB_HEALTH_CHECK_PERIOD", time.Minute),

		MaxRetries:     env.int("DB_MAX_RETRIES", 5),
		RetryDelay:     env.duration("DB_RETRY_DELAY", time.Second),
		ConnectTimeout: env.duration("DB_CONNECT_TIMEOUT", 10*time.Second),
	}
	if err := errors.Join(env.errs...); err != nil {
		return nil, err
	}

	if err := validatePool(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validatePool(cfg *database.DBConfig) error {
	switch {
	case cfg.Port < 1 || cfg.Port > 65535:
		return fmt.Errorf("DB_PORT %d out of range", cfg.Port)
	case cfg.MaxConns < 1:
		return fmt.Errorf("DB_MAX_CONNECTIONS must be positive")
	case cfg.MinConns < 0 || cfg.MinConns > cfg.MaxConns:
		return fmt.Errorf("DB_MIN_CONNECTIONS must be between 0 and DB_MAX_CONNECTIONS (%d)", cfg.MaxConns)
	case cfg.MaxRetries < 1:
		return fmt.Errorf("DB_MAX_RETRIES must be at least 1")
	case cfg.ConnectTimeout <= 0:
		return fmt.Errorf("DB_CONNECT_TIMEOUT must be positive")
	}
	return nil
}

// envParser reads typed values and collects parse errors instead of returning early.
type envParser struct {
	errs []error
}

func (p *envParser) int(key string, def int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return v
}

func (p *envParser) duration(key string, def time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return v
}
