package db

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// DB is an open database handle.
// For PostgreSQL the *sql.DB shares connections with Pool.
type DB struct {
	*sql.DB

	// Pool is the pgx pool behind a PostgreSQL handle; nil for SQLite.
	Pool *pgxpool.Pool

	// Driver is the normalized driver name, DriverSQLite or DriverPostgres.
	Driver string
}

// Open connects to the database described by cfg.
// PostgreSQL connections retry with linear backoff until RetryAttempts is exhausted.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	driver, err := NormalizeDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		return openSQLite(ctx, cfg, dsn)
	}

	pool, err := connectPool(ctx, cfg, dsn)
	if err != nil {
		return nil, err
	}
	return &DB{DB: stdlib.OpenDBFromPool(pool), Pool: pool, Driver: driver}, nil
}

func openSQLite(ctx context.Context, cfg Config, dsn string) (*DB, error) {
	if dir := filepath.Dir(cfg.Name); dir != "." && cfg.Name != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Join(ErrFailedToOpenDBConnection, err)
		}
	}
	sqlDB, err := sql.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY between them.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}
	return &DB{DB: sqlDB, Driver: DriverSQLite}, nil
}

// connectPool establishes a PostgreSQL connection pool with retry logic.
func connectPool(ctx context.Context, cfg Config, dsn string) (*pgxpool.Pool, error) {
	connConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	if cfg.MaxOpenConns > 0 {
		connConfig.MaxConns = cfg.MaxOpenConns
	}
	if cfg.MinConns > 0 {
		connConfig.MinConns = cfg.MinConns
	}
	if cfg.HealthCheckPeriod > 0 {
		connConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	}
	if cfg.MaxConnIdleTime > 0 {
		connConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.MaxConnLifetime > 0 {
		connConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}

	// Attempt 1 waits RetryInterval, attempt 2 waits 2x, attempt 3 waits 3x.
	attempts := max(cfg.RetryAttempts, 1)
	for i := range attempts {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		if i == attempts-1 {
			return nil, errors.Join(ErrFailedToOpenDBConnection, err)
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}

	return nil, ErrFailedToOpenDBConnection
}

// Healthcheck returns a check that pings the database.
func Healthcheck(db *sql.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown returns a function that closes the handle and, for PostgreSQL, its pool.
//
// Example:
//
//	app.Run(addr, mvc.ShutdownHook(db.Shutdown(handle)))
func Shutdown(db *DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		err := db.Close()
		if db.Pool != nil {
			db.Pool.Close()
		}
		return err
	}
}
