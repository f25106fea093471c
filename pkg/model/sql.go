package model

import (
	"slices"
	"strconv"
	"strings"
)

// statement is a SQL string with its bind arguments.
type statement struct {
	query string
	args  []any
}

// placeholders returns n comma-separated bind parameters starting at position from.
func (d Dialect) placeholders(from, n int) string {
	parts := make([]string, n)
	for i := range n {
		parts[i] = d.Placeholder(from + i)
	}
	return strings.Join(parts, ", ")
}

// sortedColumns returns the keys of attrs in lexical order so generated SQL is stable.
func sortedColumns(attrs Attributes) []string {
	cols := make([]string, 0, len(attrs))
	for k := range attrs {
		cols = append(cols, k)
	}
	slices.Sort(cols)
	return cols
}

func buildInsert(d Dialect, table, pk string, attrs Attributes) (statement, error) {
	cols := sortedColumns(attrs)
	if err := validIdentifier(append([]string{table, pk}, cols...)...); err != nil {
		return statement{}, err
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(d.Quote(table))

	args := make([]any, 0, len(cols))
	switch {
	case len(cols) == 0 && d.emptyRow:
		b.WriteString(" () VALUES ()")
	case len(cols) == 0:
		b.WriteString(" DEFAULT VALUES")
	default:
		quoted := make([]string, len(cols))
		for i, c := range cols {
			quoted[i] = d.Quote(c)
			args = append(args, attrs[c])
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(quoted, ", "))
		b.WriteString(") VALUES (")
		b.WriteString(d.placeholders(1, len(cols)))
		b.WriteString(")")
	}
	if d.returning {
		b.WriteString(" RETURNING ")
		b.WriteString(d.Quote(pk))
	}
	b.WriteString(";")
	return statement{query: b.String(), args: args}, nil
}

func buildUpdate(d Dialect, table, pk string, attrs Attributes, id any) (statement, error) {
	cols := sortedColumns(attrs)
	if err := validIdentifier(append([]string{table, pk}, cols...)...); err != nil {
		return statement{}, err
	}

	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets[i] = d.Quote(c) + " = " + d.Placeholder(i+1)
		args = append(args, attrs[c])
	}
	args = append(args, id)

	query := "UPDATE " + d.Quote(table) + " SET " + strings.Join(sets, ", ") +
		" WHERE " + d.Quote(pk) + " = " + d.Placeholder(len(cols)+1) + ";"
	return statement{query: query, args: args}, nil
}

func buildSelectAll(d Dialect, table string) (statement, error) {
	if err := validIdentifier(table); err != nil {
		return statement{}, err
	}
	return statement{query: "SELECT * FROM " + d.Quote(table) + ";"}, nil
}

func buildSelectIn(d Dialect, table, column string, values []any) (statement, error) {
	if err := validIdentifier(table, column); err != nil {
		return statement{}, err
	}
	query := "SELECT * FROM " + d.Quote(table) +
		" WHERE " + d.Quote(column) + " IN (" + d.placeholders(1, len(values)) + ");"
	return statement{query: query, args: values}, nil
}

// buildSelectWhere selects rows whose column equals value; limit <= 0 means no limit.
func buildSelectWhere(d Dialect, table, column string, value any, limit int) (statement, error) {
	if err := validIdentifier(table, column); err != nil {
		return statement{}, err
	}
	query := "SELECT * FROM " + d.Quote(table) + " WHERE " + d.Quote(column) + " = " + d.Placeholder(1)
	if limit > 0 {
		query += " LIMIT " + strconv.Itoa(limit)
	}
	return statement{query: query + ";", args: []any{value}}, nil
}

func buildDeleteIn(d Dialect, table, column string, values []any) (statement, error) {
	if err := validIdentifier(table, column); err != nil {
		return statement{}, err
	}
	query := "DELETE FROM " + d.Quote(table) +
		" WHERE " + d.Quote(column) + " IN (" + d.placeholders(1, len(values)) + ");"
	return statement{query: query, args: values}, nil
}
