package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultJWTSecret = "your-secret-key-change-in-production"
	defaultPassword  = "admin"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// MaxPasswordBytes is the longest password bcrypt hashes without truncation.
	MaxPasswordBytes = 72
)

// Config holds the whole application configuration.
// It is populated once from environment variables and treated as read-only afterwards.
type Config struct {
	App      AppConfig
	Auth     AuthConfig
	JWT      JWTConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, test, production
	Port        string
	Version     string
}

// AuthConfig is the single static identity allowed to log in.
type AuthConfig struct {
	Username     string
	Password     string
	PasswordHash string // bcrypt hash, takes precedence over Password when set
	BcryptCost   int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

// AccessTTL returns the token lifetime as a duration.
func (j JWTConfig) AccessTTL() time.Duration {
	return time.Duration(j.AccessTokenExpiry) * time.Minute
}

type DatabaseConfig struct {
	Driver     string // postgres, sqlite
	SQLitePath string
}

type RedisConfig struct {
	Host     string // empty disables the record cache
	Password string
	DB       int
	TTL      time.Duration
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Library API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Auth: AuthConfig{
			Username:     getEnv("AUTH_USERNAME", "admin"),
			Password:     getEnv("AUTH_PASSWORD", defaultPassword),
			PasswordHash: os.Getenv("AUTH_PASSWORD_HASH"),
			BcryptCost:   getEnvInt("AUTH_BCRYPT_COST", bcrypt.DefaultCost),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", DriverPostgres),
			SQLitePath: getEnv("SQLITE_PATH", "data/library.db"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      cacheTTL,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the invariants the rest of the application relies on.
func (c *Config) Validate() error {
	if c.Auth.Username == "" {
		return fmt.Errorf("AUTH_USERNAME must not be empty")
	}
	if c.Auth.Password == "" && c.Auth.PasswordHash == "" {
		return fmt.Errorf("AUTH_PASSWORD or AUTH_PASSWORD_HASH must be set")
	}
	if c.Auth.PasswordHash == "" && len(c.Auth.Password) > MaxPasswordBytes {
		return fmt.Errorf("AUTH_PASSWORD must be at most %d bytes", MaxPasswordBytes)
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("AUTH_BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWT.AccessTokenExpiry <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRY must be positive")
	}

	if err := c.Database.validate(); err != nil {
		return err
	}

	// Production must not run with the shipped defaults
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Auth.PasswordHash == "" && c.Auth.Password == defaultPassword {
			return fmt.Errorf("AUTH_PASSWORD must be changed in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
