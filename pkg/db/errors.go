package db

import "errors"

var (
	ErrUnsupportedDriver        = errors.New("db: unsupported database driver")
	ErrMissingDatabaseName      = errors.New("db: database name is required")
	ErrFailedToParseDBConfig    = errors.New("db: failed to parse database configuration")
	ErrFailedToOpenDBConnection = errors.New("db: failed to open database connection")
	ErrHealthcheckFailed        = errors.New("db: healthcheck failed")
	ErrBeginTransaction         = errors.New("db: failed to begin transaction")
	ErrCommitTransaction        = errors.New("db: failed to commit transaction")
	ErrSetDialect               = errors.New("db migrator: failed to set dialect")
	ErrApplyMigrations          = errors.New("db migrator: failed to apply migrations")
)
