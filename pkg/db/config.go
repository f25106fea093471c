package db

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Config holds the connection parameters for a single database handle.
// The flat driver/host/name/username/password layout mirrors the usual
// PHP-style database array; Driver decides how the remaining fields are used.
type Config struct {
	// Driver is one of sqlite, sqlite3, pgsql, postgres, postgresql or pgx.
	Driver string `yaml:"driver"`

	// Host and Port address the server. Ignored by SQLite.
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// Name is the database name, or the file path for SQLite.
	Name string `yaml:"name"`

	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// SSLMode is passed to PostgreSQL as sslmode.
	SSLMode string `yaml:"sslmode"`

	// MigrationsTable records applied goose migrations.
	MigrationsTable string `yaml:"migrations_table"`

	// Health check frequency to detect connection issues early.
	HealthCheckPeriod time.Duration `yaml:"healthcheck_period"`

	// Force connection refresh to prevent stale connections behind poolers like PgBouncer.
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`

	// Retry configuration for handling transient network issues during startup.
	RetryAttempts int           `yaml:"retry_attempts"`
	RetryInterval time.Duration `yaml:"retry_interval"`

	MaxOpenConns int32 `yaml:"max_open_conns"`
	MinConns     int32 `yaml:"min_conns"`
}

// DefaultConfig returns a SQLite configuration with the pool defaults applied.
func DefaultConfig() Config {
	return Config{
		Driver:            DriverSQLite,
		Name:              "storage/database.sqlite",
		SSLMode:           "disable",
		MigrationsTable:   "schema_migrations",
		HealthCheckPeriod: time.Minute,
		MaxConnIdleTime:   10 * time.Minute,
		MaxConnLifetime:   30 * time.Minute,
		RetryAttempts:     3,
		RetryInterval:     5 * time.Second,
		MaxOpenConns:      10,
		MinConns:          2,
	}
}

// Normalized driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// NormalizeDriver maps the accepted driver aliases to DriverSQLite or DriverPostgres.
func NormalizeDriver(driver string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		return DriverSQLite, nil
	case "pgsql", "postgres", "postgresql", "pgx":
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// DSN builds the data source name for the configured driver.
// SQLite gets the file path with foreign keys enabled;
// PostgreSQL gets a postgres:// URL.
func (c Config) DSN() (string, error) {
	driver, err := NormalizeDriver(c.Driver)
	if err != nil {
		return "", err
	}

	switch driver {
	case DriverSQLite:
		if c.Name == "" {
			return "", ErrMissingDatabaseName
		}
		return "file:" + c.Name + "?_foreign_keys=on&_busy_timeout=5000", nil
	default:
		if c.Name == "" {
			return "", ErrMissingDatabaseName
		}
		host := c.Host
		if host == "" {
			host = "localhost"
		}
		if c.Port > 0 {
			host += ":" + strconv.Itoa(c.Port)
		}
		u := url.URL{
			Scheme: "postgres",
			Host:   host,
			Path:   "/" + c.Name,
		}
		if c.Username != "" {
			u.User = url.UserPassword(c.Username, c.Password)
		}
		if c.SSLMode != "" {
			u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
		}
		return u.String(), nil
	}
}
