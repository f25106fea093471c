package model_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avidian/mvc/pkg/db"
	"github.com/avidian/mvc/pkg/model"
)

var (
	Users    = model.Define("User", model.Fillable("username", "password"), model.Hidden("password"))
	Posts    = model.Define("Post", model.Fillable("user_id", "title"))
	Profiles = model.Define("Profile", model.Fillable("user_id", "bio"))
)

const schema = `
CREATE TABLE "user" (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL,
	password TEXT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE post (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER,
	title TEXT NOT NULL DEFAULT ''
);
CREATE TABLE profile (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER,
	bio TEXT
);
`

type observed struct {
	op  string
	dur time.Duration
	err error
}

// newConn opens a fresh SQLite file with the test schema.
// SQLite in-memory databases are per connection, so a temp file is used.
func newConn(t *testing.T, opts ...model.ConnOption) *model.Conn {
	t.Helper()

	cfg := db.DefaultConfig()
	cfg.Name = filepath.Join(t.TempDir(), "model.sqlite")
	handle, err := db.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = handle.Close() })

	_, err = handle.ExecContext(context.Background(), schema)
	require.NoError(t, err)

	return model.NewConn(handle.DB, model.SQLite, opts...)
}

func mustCreate(t *testing.T, repo *model.Repository, attrs model.Attributes) *model.Model {
	t.Helper()
	m, err := repo.Create(context.Background(), attrs)
	require.NoError(t, err)
	require.NotNil(t, m)
	return m
}
