package db_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/avidian/mvc/pkg/db"
)

func openTemp(t *testing.T) *db.DB {
	t.Helper()
	cfg := db.DefaultConfig()
	cfg.Name = filepath.Join(t.TempDir(), "nested", "test.sqlite")
	handle, err := db.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Shutdown(handle)(context.Background()) })
	return handle
}

func TestOpenSQLite(t *testing.T) {
	t.Parallel()

	handle := openTemp(t)
	require.Equal(t, db.DriverSQLite, handle.Driver)
	require.Nil(t, handle.Pool)
	require.NoError(t, db.Healthcheck(handle.DB)(context.Background()))
}

func TestHealthcheckClosed(t *testing.T) {
	t.Parallel()

	cfg := db.DefaultConfig()
	cfg.Name = filepath.Join(t.TempDir(), "closed.sqlite")
	handle, err := db.Open(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, handle.Close())

	err = db.Healthcheck(handle.DB)(context.Background())
	require.ErrorIs(t, err, db.ErrHealthcheckFailed)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	t.Parallel()

	_, err := db.Open(context.Background(), db.Config{Driver: "oracle", Name: "x"})
	require.ErrorIs(t, err, db.ErrUnsupportedDriver)
}

func TestWithTx(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	handle := openTemp(t)
	_, err := handle.ExecContext(ctx, `CREATE TABLE item (id INTEGER PRIMARY KEY, name TEXT)`)
	require.NoError(t, err)

	count := func() int {
		var n int
		require.NoError(t, handle.QueryRowContext(ctx, `SELECT COUNT(*) FROM item`).Scan(&n))
		return n
	}

	t.Run("commit", func(t *testing.T) {
		err := db.WithTx(ctx, handle.DB, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO item (name) VALUES ('a')`)
			return err
		})
		require.NoError(t, err)
		require.Equal(t, 1, count())
	})

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := db.WithTx(ctx, handle.DB, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `INSERT INTO item (name) VALUES ('b')`); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)
		require.Equal(t, 1, count())
	})

	t.Run("rollback on panic", func(t *testing.T) {
		require.Panics(t, func() {
			_ = db.WithTx(ctx, handle.DB, func(tx *sql.Tx) error {
				_, _ = tx.ExecContext(ctx, `INSERT INTO item (name) VALUES ('c')`)
				panic("boom")
			})
		})
		require.Equal(t, 1, count())
	})
}

// goose keeps its configuration in package globals, so this test is not parallel.
func TestMigrate(t *testing.T) {
	ctx := context.Background()
	handle := openTemp(t)

	migrations := fstest.MapFS{
		"migrations/00001_create_item.sql": &fstest.MapFile{Data: []byte(`-- +goose Up
CREATE TABLE item (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL);

-- +goose Down
DROP TABLE item;
`)},
	}

	require.NoError(t, db.Migrate(ctx, handle, migrations, "migrations", "test_migrations", nil))
	// A second run has nothing to apply.
	require.NoError(t, db.Migrate(ctx, handle, migrations, "migrations", "test_migrations", nil))

	_, err := handle.ExecContext(ctx, `INSERT INTO item (name) VALUES ('ok')`)
	require.NoError(t, err)

	var version int64
	require.NoError(t, handle.QueryRowContext(ctx, `SELECT MAX(version_id) FROM test_migrations`).Scan(&version))
	require.Equal(t, int64(1), version)
}
