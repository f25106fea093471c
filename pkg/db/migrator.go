package db

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// Migrate applies every pending goose migration found in dir of fsys.
// The goose dialect follows the handle's driver.
func Migrate(ctx context.Context, db *DB, fsys fs.FS, dir, migrationTable string, log *slog.Logger) error {
	driver, err := NormalizeDriver(db.Driver)
	if err != nil {
		return errors.Join(ErrSetDialect, err)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if dir == "" {
		dir = "."
	}
	if migrationTable == "" {
		migrationTable = "schema_migrations"
	}

	goose.SetBaseFS(fsys)
	goose.SetLogger(&gooseLoggerAdapter{log})
	goose.SetTableName(migrationTable)

	if err := goose.SetDialect(driver); err != nil {
		return errors.Join(ErrSetDialect, err)
	}

	if err := goose.UpContext(ctx, db.DB, dir); err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	return nil
}

type gooseLoggerAdapter struct {
	log *slog.Logger
}

func (g *gooseLoggerAdapter) Printf(format string, args ...any) {
	g.log.Info(fmt.Sprintf(format, args...))
}

func (g *gooseLoggerAdapter) Fatalf(format string, args ...any) {
	// goose returns the error as well; never exit from here.
	g.log.Error(fmt.Sprintf(format, args...))
}
