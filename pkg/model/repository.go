package model

import (
	"context"
	"errors"

	"github.com/avidian/mvc/pkg/collection"
)

// Repository runs table-level operations for one model definition.
// Obtain one with Conn.Table.
type Repository struct {
	conn *Conn
	def  *Definition
}

// Definition returns the model definition served by the repository.
func (r *Repository) Definition() *Definition {
	return r.def
}

// Conn returns the connection the repository runs on.
func (r *Repository) Conn() *Conn {
	return r.conn
}

// New returns an unsaved instance bound to the repository, filled with attrs.
func (r *Repository) New(attrs Attributes) *Model {
	m := &Model{def: r.def, repo: r, attrs: make(Attributes)}
	return m.Fill(attrs)
}

// hydrate builds a bound instance from a database row.
func (r *Repository) hydrate(row Attributes) *Model {
	m := &Model{def: r.def, repo: r, attrs: make(Attributes, len(row))}
	return m.ForceFill(row)
}

func (r *Repository) hydrateAll(rows []Attributes) []*Model {
	out := make([]*Model, len(rows))
	for i, row := range rows {
		out[i] = r.hydrate(row)
	}
	return out
}

// Create inserts a row and returns it as read back from the database.
// Timestamp columns are dropped from attrs; the database fills them.
func (r *Repository) Create(ctx context.Context, attrs Attributes) (*Model, error) {
	data := collection.Except(attrs, ColumnCreatedAt, ColumnUpdatedAt)
	d := r.conn.dialect
	pk := r.def.primaryKey

	st, err := buildInsert(d, r.def.Table(), pk, data)
	if err != nil {
		return nil, err
	}

	var id any
	if d.returning {
		rows, err := r.conn.query(ctx, "insert", st)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, ErrLastInsertID
		}
		id = rows[0][pk]
	} else {
		res, err := r.conn.execute(ctx, "insert", st)
		if err != nil {
			return nil, err
		}
		if v, ok := data[pk]; ok && v != nil {
			id = v
		} else {
			last, err := res.LastInsertId()
			if err != nil {
				return nil, errors.Join(ErrLastInsertID, err)
			}
			id = last
		}
	}

	return r.Find(ctx, id)
}

// update writes attrs to the row whose primary key equals id.
// The primary key and timestamp columns are never written.
func (r *Repository) update(ctx context.Context, id any, attrs Attributes) error {
	pk := r.def.primaryKey
	data := collection.Except(attrs, pk, ColumnCreatedAt, ColumnUpdatedAt)
	if len(data) == 0 {
		return nil
	}
	st, err := buildUpdate(r.conn.dialect, r.def.Table(), pk, data, id)
	if err != nil {
		return err
	}
	_, err = r.conn.execute(ctx, "update", st)
	return err
}

// Find returns the row with the given primary key, or nil when none matches.
func (r *Repository) Find(ctx context.Context, id any) (*Model, error) {
	found, err := r.FindMany(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

// FindMany returns the rows whose primary key is one of ids.
// Missing ids are skipped; no match yields an empty slice.
func (r *Repository) FindMany(ctx context.Context, ids ...any) ([]*Model, error) {
	if len(ids) == 0 {
		return []*Model{}, nil
	}
	st, err := buildSelectIn(r.conn.dialect, r.def.Table(), r.def.primaryKey, ids)
	if err != nil {
		return nil, err
	}
	rows, err := r.conn.query(ctx, "select", st)
	if err != nil {
		return nil, err
	}
	return r.hydrateAll(rows), nil
}

// All returns every row of the table.
func (r *Repository) All(ctx context.Context) ([]*Model, error) {
	st, err := buildSelectAll(r.conn.dialect, r.def.Table())
	if err != nil {
		return nil, err
	}
	rows, err := r.conn.query(ctx, "select", st)
	if err != nil {
		return nil, err
	}
	return r.hydrateAll(rows), nil
}

// Where returns every row whose column equals value.
func (r *Repository) Where(ctx context.Context, column string, value any) ([]*Model, error) {
	st, err := buildSelectWhere(r.conn.dialect, r.def.Table(), column, value, 0)
	if err != nil {
		return nil, err
	}
	rows, err := r.conn.query(ctx, "select", st)
	if err != nil {
		return nil, err
	}
	return r.hydrateAll(rows), nil
}

// First returns the first row whose column equals value, or nil when none matches.
func (r *Repository) First(ctx context.Context, column string, value any) (*Model, error) {
	st, err := buildSelectWhere(r.conn.dialect, r.def.Table(), column, value, 1)
	if err != nil {
		return nil, err
	}
	rows, err := r.conn.query(ctx, "select", st)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return r.hydrate(rows[0]), nil
}

// DeleteMany removes the rows addressed by ids.
// Each entry may be a primary key value or a *Model of this repository.
func (r *Repository) DeleteMany(ctx context.Context, ids ...any) error {
	keys := make([]any, 0, len(ids))
	for _, id := range ids {
		if m, ok := id.(*Model); ok {
			if m == nil || !m.Exists() {
				continue
			}
			keys = append(keys, m.ID())
			continue
		}
		keys = append(keys, id)
	}
	if len(keys) == 0 {
		return nil
	}

	st, err := buildDeleteIn(r.conn.dialect, r.def.Table(), r.def.primaryKey, keys)
	if err != nil {
		return err
	}
	_, err = r.conn.execute(ctx, "delete", st)
	return err
}
