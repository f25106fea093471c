package model

import (
	"context"
	"fmt"
	"maps"
	"strconv"

	"github.com/avidian/mvc/pkg/collection"
)

// Attributes maps column names to values.
type Attributes map[string]any

// Model is a single row of a table. Column values live in an attribute map;
// typed models embed *Model and add accessors on top of it.
//
//	type Post struct{ *model.Model }
//
//	func (p Post) Title() string { return p.String("title") }
type Model struct {
	def   *Definition
	repo  *Repository
	attrs Attributes
}

// Definition returns the definition this instance was built from.
func (m *Model) Definition() *Definition {
	return m.def
}

// Fill mass-assigns attrs, keeping only fillable columns when the
// definition declares any.
func (m *Model) Fill(attrs Attributes) *Model {
	if len(m.def.fillable) > 0 {
		attrs = collection.Only(attrs, m.def.fillable...)
	}
	return m.ForceFill(attrs)
}

// ForceFill mass-assigns attrs without consulting the fillable list.
// Rows read from the database are hydrated through ForceFill.
func (m *Model) ForceFill(attrs Attributes) *Model {
	if m.attrs == nil {
		m.attrs = make(Attributes, len(attrs))
	}
	maps.Copy(m.attrs, attrs)
	return m
}

// Get returns the value stored for key.
func (m *Model) Get(key string) (any, bool) {
	v, ok := m.attrs[key]
	return v, ok
}

// Set stores a single value, bypassing the fillable list.
func (m *Model) Set(key string, value any) *Model {
	if m.attrs == nil {
		m.attrs = make(Attributes)
	}
	m.attrs[key] = value
	return m
}

// Has reports whether key is present, even when its value is nil.
func (m *Model) Has(key string) bool {
	_, ok := m.attrs[key]
	return ok
}

// String returns the value for key formatted as a string.
// Missing and nil values yield "".
func (m *Model) String(key string) string {
	switch v := m.attrs[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// Int64 returns the value for key as an int64.
// The second result is false when the value is missing or not numeric.
func (m *Model) Int64(key string) (int64, bool) {
	switch v := m.attrs[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case float64:
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	case []byte:
		n, err := strconv.ParseInt(string(v), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// ID returns the primary key value, or nil when unset.
func (m *Model) ID() any {
	return m.attrs[m.def.primaryKey]
}

// Exists reports whether the instance carries a primary key value.
func (m *Model) Exists() bool {
	return m.ID() != nil
}

// Attributes returns a copy of every attribute, hidden columns included.
func (m *Model) Attributes() Attributes {
	return maps.Clone(m.attrs)
}

// Update fills attrs, writes every non-key column back to the row and
// reloads the instance from the database. The instance is left untouched
// when the write fails.
func (m *Model) Update(ctx context.Context, attrs Attributes) error {
	if m.repo == nil {
		return ErrDetached
	}
	if !m.Exists() {
		return ErrMissingPrimaryKey
	}
	next := &Model{def: m.def, attrs: maps.Clone(m.attrs)}
	next.Fill(attrs)
	if err := m.repo.update(ctx, m.ID(), next.attrs); err != nil {
		return err
	}
	m.attrs = next.attrs
	return m.Refresh(ctx)
}

// Save updates the row when the instance has a primary key and inserts it otherwise.
func (m *Model) Save(ctx context.Context) error {
	if m.repo == nil {
		return ErrDetached
	}
	if m.Exists() {
		return m.Update(ctx, nil)
	}
	created, err := m.repo.Create(ctx, m.attrs)
	if err != nil {
		return err
	}
	if created != nil {
		m.attrs = created.attrs
	}
	return nil
}

// Delete removes the row addressed by the primary key.
func (m *Model) Delete(ctx context.Context) error {
	if m.repo == nil {
		return ErrDetached
	}
	if !m.Exists() {
		return ErrMissingPrimaryKey
	}
	return m.repo.DeleteMany(ctx, m.ID())
}

// Refresh reloads every attribute from the database.
// Returns ErrNotFound when the row no longer exists.
func (m *Model) Refresh(ctx context.Context) error {
	if m.repo == nil {
		return ErrDetached
	}
	if !m.Exists() {
		return ErrMissingPrimaryKey
	}
	fresh, err := m.repo.Find(ctx, m.ID())
	if err != nil {
		return err
	}
	if fresh == nil {
		return ErrNotFound
	}
	m.attrs = fresh.attrs
	return nil
}

// repository returns the repository the instance is bound to.
func (m *Model) repository() (*Repository, error) {
	if m.repo == nil {
		return nil, ErrDetached
	}
	return m.repo, nil
}
