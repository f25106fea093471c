package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildInsert(t *testing.T) {
	t.Parallel()

	t.Run("sqlite", func(t *testing.T) {
		t.Parallel()
		st, err := buildInsert(SQLite, "user", "id", Attributes{"username": "ada", "password": "x"})
		require.NoError(t, err)
		require.Equal(t, `INSERT INTO "user" ("password", "username") VALUES (?, ?);`, st.query)
		require.Equal(t, []any{"x", "ada"}, st.args)
	})

	t.Run("postgres returns primary key", func(t *testing.T) {
		t.Parallel()
		st, err := buildInsert(Postgres, "user", "id", Attributes{"username": "ada"})
		require.NoError(t, err)
		require.Equal(t, `INSERT INTO "user" ("username") VALUES ($1) RETURNING "id";`, st.query)
	})

	t.Run("mysql quoting", func(t *testing.T) {
		t.Parallel()
		st, err := buildInsert(MySQL, "user", "id", Attributes{"username": "ada"})
		require.NoError(t, err)
		require.Equal(t, "INSERT INTO `user` (`username`) VALUES (?);", st.query)
	})

	t.Run("no columns", func(t *testing.T) {
		t.Parallel()
		st, err := buildInsert(SQLite, "user", "id", Attributes{})
		require.NoError(t, err)
		require.Equal(t, `INSERT INTO "user" DEFAULT VALUES;`, st.query)
		require.Empty(t, st.args)
	})

	t.Run("no columns on mysql", func(t *testing.T) {
		t.Parallel()
		st, err := buildInsert(MySQL, "user", "id", Attributes{})
		require.NoError(t, err)
		require.Equal(t, "INSERT INTO `user` () VALUES ();", st.query)
		require.Empty(t, st.args)
	})

	t.Run("rejects bad identifiers", func(t *testing.T) {
		t.Parallel()
		_, err := buildInsert(SQLite, "user", "id", Attributes{`name"; DROP TABLE user; --`: 1})
		require.ErrorIs(t, err, ErrInvalidIdentifier)
		_, err = buildInsert(SQLite, "my table", "id", Attributes{"a": 1})
		require.ErrorIs(t, err, ErrInvalidIdentifier)
	})
}

func TestBuildUpdate(t *testing.T) {
	t.Parallel()

	st, err := buildUpdate(Postgres, "post", "id", Attributes{"title": "t", "body": "b"}, int64(7))
	require.NoError(t, err)
	require.Equal(t, `UPDATE "post" SET "body" = $1, "title" = $2 WHERE "id" = $3;`, st.query)
	require.Equal(t, []any{"b", "t", int64(7)}, st.args)

	st, err = buildUpdate(SQLite, "post", "id", Attributes{"title": "t"}, 1)
	require.NoError(t, err)
	require.Equal(t, `UPDATE "post" SET "title" = ? WHERE "id" = ?;`, st.query)
}

func TestBuildSelect(t *testing.T) {
	t.Parallel()

	st, err := buildSelectAll(SQLite, "post")
	require.NoError(t, err)
	require.Equal(t, `SELECT * FROM "post";`, st.query)

	st, err = buildSelectIn(Postgres, "post", "id", []any{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, `SELECT * FROM "post" WHERE "id" IN ($1, $2, $3);`, st.query)
	require.Equal(t, []any{1, 2, 3}, st.args)

	st, err = buildSelectWhere(SQLite, "post", "user_id", 4, 0)
	require.NoError(t, err)
	require.Equal(t, `SELECT * FROM "post" WHERE "user_id" = ?;`, st.query)

	st, err = buildSelectWhere(Postgres, "profile", "user_id", 4, 1)
	require.NoError(t, err)
	require.Equal(t, `SELECT * FROM "profile" WHERE "user_id" = $1 LIMIT 1;`, st.query)

	_, err = buildSelectWhere(SQLite, "post", "1=1 OR user_id", 4, 0)
	require.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestBuildDeleteIn(t *testing.T) {
	t.Parallel()

	st, err := buildDeleteIn(SQLite, "user", "id", []any{1, 2})
	require.NoError(t, err)
	require.Equal(t, `DELETE FROM "user" WHERE "id" IN (?, ?);`, st.query)
	require.Equal(t, []any{1, 2}, st.args)
}

func TestDialectFor(t *testing.T) {
	t.Parallel()

	for driver, want := range map[string]Dialect{
		"sqlite":   SQLite,
		"sqlite3":  SQLite,
		"mysql":    MySQL,
		"pgsql":    Postgres,
		"postgres": Postgres,
		"pgx":      Postgres,
	} {
		got, err := DialectFor(driver)
		require.NoError(t, err, driver)
		require.Equal(t, want, got, driver)
	}

	_, err := DialectFor("oracle")
	require.ErrorIs(t, err, ErrUnsupportedDialect)
}
