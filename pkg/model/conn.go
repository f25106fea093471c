package model

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/avidian/mvc/pkg/db"
	"github.com/avidian/mvc/pkg/logger"
)

// QueryObserver is notified after every statement with the operation name
// ("insert", "update", "select", "delete"), its duration and its error.
type QueryObserver func(op string, d time.Duration, err error)

// executor is satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Conn is the database handle shared by every repository.
// It replaces a process-wide static connection: build one at startup and pass it around.
type Conn struct {
	db       *sql.DB
	exec     executor
	dialect  Dialect
	logger   *slog.Logger
	observer QueryObserver
}

// ConnOption configures a Conn.
type ConnOption func(*Conn)

// WithLogger logs every statement at debug level.
func WithLogger(l *slog.Logger) ConnOption {
	return func(c *Conn) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver registers a callback run after every statement.
func WithObserver(fn QueryObserver) ConnOption {
	return func(c *Conn) {
		c.observer = fn
	}
}

// NewConn wraps an open database handle.
func NewConn(sqlDB *sql.DB, dialect Dialect, opts ...ConnOption) *Conn {
	c := &Conn{
		db:      sqlDB,
		exec:    sqlDB,
		dialect: dialect,
		logger:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dialect returns the SQL dialect used to build statements.
func (c *Conn) Dialect() Dialect {
	return c.dialect
}

// DB returns the underlying database handle.
func (c *Conn) DB() *sql.DB {
	return c.db
}

// Table returns a repository for def bound to this connection.
func (c *Conn) Table(def *Definition) *Repository {
	return &Repository{conn: c, def: def}
}

// Transaction runs fn with a Conn whose statements share one transaction.
// The transaction is committed when fn returns nil and rolled back otherwise.
func (c *Conn) Transaction(ctx context.Context, fn func(tx *Conn) error) error {
	return db.WithTx(ctx, c.db, func(tx *sql.Tx) error {
		txConn := *c
		txConn.exec = tx
		return fn(&txConn)
	})
}

// execute prepares and executes a statement that returns no rows.
func (c *Conn) execute(ctx context.Context, op string, st statement) (sql.Result, error) {
	start := time.Now()
	stmt, err := c.exec.PrepareContext(ctx, st.query)
	if err != nil {
		err = errors.Join(ErrPrepare, err)
		c.observe(ctx, op, st, start, err)
		return nil, err
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, st.args...)
	if err != nil {
		err = errors.Join(ErrExecute, err)
	}
	c.observe(ctx, op, st, start, err)
	return res, err
}

// query prepares and runs a statement, returning every row as Attributes.
func (c *Conn) query(ctx context.Context, op string, st statement) ([]Attributes, error) {
	start := time.Now()
	stmt, err := c.exec.PrepareContext(ctx, st.query)
	if err != nil {
		err = errors.Join(ErrPrepare, err)
		c.observe(ctx, op, st, start, err)
		return nil, err
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, st.args...)
	if err != nil {
		err = errors.Join(ErrQuery, err)
		c.observe(ctx, op, st, start, err)
		return nil, err
	}
	defer rows.Close()

	result, err := scanRows(rows)
	c.observe(ctx, op, st, start, err)
	return result, err
}

func (c *Conn) observe(ctx context.Context, op string, st statement, start time.Time, err error) {
	d := time.Since(start)
	if err != nil {
		c.logger.DebugContext(ctx, "sql statement failed",
			slog.String("op", op),
			slog.String("sql", st.query),
			slog.Duration("duration", d),
			slog.Any("error", err),
		)
	} else {
		c.logger.DebugContext(ctx, "sql statement",
			slog.String("op", op),
			slog.String("sql", st.query),
			slog.Duration("duration", d),
		)
	}
	if c.observer != nil {
		c.observer(op, d, err)
	}
}

// scanRows reads every row into a column->value map.
// Driver []byte values are converted to strings.
func scanRows(rows *sql.Rows) ([]Attributes, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.Join(ErrScan, err)
	}

	var result []Attributes
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Join(ErrScan, err)
		}

		row := make(Attributes, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrScan, err)
	}
	return result, nil
}
