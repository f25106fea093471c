// Package db opens the database handle shared by the model layer.
//
// SQLite is served by [github.com/mattn/go-sqlite3]; PostgreSQL by a
// [github.com/jackc/pgx/v5/pgxpool] pool bridged to database/sql, so the
// model package runs the same prepared statements on both.
//
// # Configuration
//
// Config keeps the flat driver/host/port/name/username/password layout:
//
//	database:
//	  driver: pgsql
//	  host: localhost
//	  name: blog
//	  username: app
//	  password: secret
//
// Accepted drivers are sqlite, sqlite3, pgsql, postgres, postgresql and pgx.
//
// # Usage
//
//	handle, err := db.Open(ctx, cfg.Database)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer handle.Close()
//
//	if err := db.Migrate(ctx, handle, migrations, "migrations", "schema_migrations", logger); err != nil {
//		log.Fatal(err)
//	}
//
// # Transactions
//
// [WithTx] commits when fn returns nil and rolls back on error or panic:
//
//	err := db.WithTx(ctx, handle.DB, func(tx *sql.Tx) error {
//		_, err := tx.ExecContext(ctx, "DELETE FROM post")
//		return err
//	})
//
// # Error Handling
//
// Sentinel errors ([ErrUnsupportedDriver], [ErrFailedToOpenDBConnection],
// [ErrHealthcheckFailed], [ErrApplyMigrations], ...) are wrapped with
// [errors.Join] to preserve the original error.
package db
