package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Dialect captures the few places where generated SQL differs between engines.
type Dialect struct {
	name      string
	quote     byte
	numbered  bool // $1, $2 placeholders instead of ?
	returning bool // INSERT ... RETURNING instead of LastInsertId
	emptyRow  bool // "() VALUES ()" instead of DEFAULT VALUES
}

// Supported dialects.
var (
	SQLite   = Dialect{name: "sqlite3", quote: '"'}
	MySQL    = Dialect{name: "mysql", quote: '`', emptyRow: true}
	Postgres = Dialect{name: "postgres", quote: '"', numbered: true, returning: true}
)

// DialectFor returns the dialect for a database/sql driver name.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "mysql":
		return MySQL, nil
	case "postgres", "postgresql", "pgsql", "pgx":
		return Postgres, nil
	default:
		return Dialect{}, fmt.Errorf("%w: %q", ErrUnsupportedDialect, driver)
	}
}

// Name returns the dialect name as understood by goose and database/sql.
func (d Dialect) Name() string {
	return d.name
}

// Placeholder returns the bind parameter for the n-th argument, starting at 1.
func (d Dialect) Placeholder(n int) string {
	if d.numbered {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Quote wraps an identifier in the dialect's quote character.
// Identifiers must already be validated.
func (d Dialect) Quote(ident string) string {
	q := string(d.quote)
	return q + ident + q
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validIdentifier guards every table and column name that is concatenated into SQL.
func validIdentifier(names ...string) error {
	for _, n := range names {
		if !identifierPattern.MatchString(n) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, n)
		}
	}
	return nil
}
