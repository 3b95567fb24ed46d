package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "APP_PORT", "AUTH_USERNAME", "AUTH_PASSWORD", "AUTH_PASSWORD_HASH",
		"JWT_SECRET", "JWT_ACCESS_EXPIRY", "DB_DRIVER", "REDIS_HOST", "CACHE_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "admin", cfg.Auth.Username)
	assert.Equal(t, "admin", cfg.Auth.Password)
	assert.Equal(t, time.Hour, cfg.JWT.AccessTTL())
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Empty(t, cfg.Redis.Host)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("AUTH_USERNAME", "librarian")
	t.Setenv("AUTH_PASSWORD", "hunter2")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_ACCESS_EXPIRY", "15")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/lib.db")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "librarian", cfg.Auth.Username)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL())
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/lib.db", cfg.Database.SQLitePath)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
}

func TestLoad_InvalidCacheTTL(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:      AppConfig{Environment: "production"},
			Auth:     AuthConfig{Username: "admin", Password: "strong-password", BcryptCost: 10},
			JWT:      JWTConfig{Secret: "prod-secret", AccessTokenExpiry: 60},
			Database: DatabaseConfig{Driver: DriverPostgres},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty username", func(c *Config) { c.Auth.Username = "" }},
		{"no password", func(c *Config) { c.Auth.Password = "" }},
		{"password over bcrypt limit", func(c *Config) { c.Auth.Password = strings.Repeat("p", MaxPasswordBytes+1) }},
		{"bcrypt cost too high", func(c *Config) { c.Auth.BcryptCost = 99 }},
		{"empty secret", func(c *Config) { c.JWT.Secret = "" }},
		{"zero expiry", func(c *Config) { c.JWT.AccessTokenExpiry = 0 }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"sqlite without path", func(c *Config) { c.Database.Driver = DriverSQLite }},
		{"default secret in production", func(c *Config) { c.JWT.Secret = defaultJWTSecret }},
		{"default password in production", func(c *Config) { c.Auth.Password = defaultPassword }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	longest := valid()
	longest.Auth.Password = strings.Repeat("p", MaxPasswordBytes)
	assert.NoError(t, longest.Validate())

	withHash := valid()
	withHash.Auth.Password = ""
	withHash.Auth.PasswordHash = "$2a$10$abcdefghijklmnopqrstuv"
	assert.NoError(t, withHash.Validate())
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_MAX_CONNECTIONS", "")
	t.Setenv("DB_CONNECT_TIMEOUT", "3s")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, int32(25), cfg.MaxConns)
	assert.Equal(t, int32(5), cfg.MinConns)
	assert.Equal(t, 3*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 5*time.Minute, cfg.MaxConnLifetime)
}

func TestLoadDatabaseConfig_ReportsEveryBadValue(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")
	t.Setenv("DB_RETRY_DELAY", "later")

	_, err := LoadDatabaseConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PORT")
	assert.Contains(t, err.Error(), "DB_RETRY_DELAY")
}

func TestLoadDatabaseConfig_PoolValidation(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"port out of range", "DB_PORT", "70000"},
		{"no connections", "DB_MAX_CONNECTIONS", "0"},
		{"min above max", "DB_MIN_CONNECTIONS", "50"},
		{"no retries", "DB_MAX_RETRIES", "0"},
		{"zero connect timeout", "DB_CONNECT_TIMEOUT", "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadDatabaseConfig()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}

func TestDatabaseConfigValidate(t *testing.T) {
	assert.NoError(t, DatabaseConfig{Driver: DriverPostgres}.validate())
	assert.NoError(t, DatabaseConfig{Driver: DriverSQLite, SQLitePath: "lib.db"}.validate())
	assert.ErrorContains(t, DatabaseConfig{Driver: DriverSQLite}.validate(), "SQLITE_PATH")
	assert.ErrorContains(t, DatabaseConfig{Driver: "mysql"}.validate(), "mysql")
}
