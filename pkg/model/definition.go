package model

import (
	"slices"
	"strings"
)

// DefaultPrimaryKey is the column used to address rows unless a definition overrides it.
const DefaultPrimaryKey = "id"

// Timestamp columns are managed by the database and never written by Create or Update.
const (
	ColumnCreatedAt = "created_at"
	ColumnUpdatedAt = "updated_at"
)

// Definition describes a model: its table, primary key and column lists.
// A Definition is immutable after Define returns and is safe to share.
type Definition struct {
	name       string
	table      string
	primaryKey string
	fillable   []string
	hidden     []string
}

// DefinitionOption configures a Definition.
type DefinitionOption func(*Definition)

// WithTable sets an explicit table name instead of inferring it from the model name.
func WithTable(table string) DefinitionOption {
	return func(d *Definition) {
		d.table = table
	}
}

// WithPrimaryKey overrides the primary key column. Defaults to "id".
func WithPrimaryKey(column string) DefinitionOption {
	return func(d *Definition) {
		if column != "" {
			d.primaryKey = column
		}
	}
}

// Fillable lists the columns accepted by Fill.
// An empty list accepts every column.
func Fillable(columns ...string) DefinitionOption {
	return func(d *Definition) {
		d.fillable = append(d.fillable, columns...)
	}
}

// Hidden lists the columns excluded from ToMap and JSON output.
func Hidden(columns ...string) DefinitionOption {
	return func(d *Definition) {
		d.hidden = append(d.hidden, columns...)
	}
}

// Define creates a model definition.
//
// Example:
//
//	var Users = model.Define("User",
//	    model.Fillable("username", "password"),
//	    model.Hidden("password"),
//	)
func Define(name string, opts ...DefinitionOption) *Definition {
	d := &Definition{
		name:       name,
		primaryKey: DefaultPrimaryKey,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the model name given to Define.
func (d *Definition) Name() string {
	return d.name
}

// Table returns the explicit table name, or the lower-cased last segment
// of the model name ("app.models.User" becomes "user").
func (d *Definition) Table() string {
	if d.table != "" {
		return d.table
	}
	name := d.name
	if i := strings.LastIndexAny(name, `./\`); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}

// PrimaryKey returns the primary key column.
func (d *Definition) PrimaryKey() string {
	return d.primaryKey
}

// FillableColumns returns a copy of the fillable column list.
func (d *Definition) FillableColumns() []string {
	return slices.Clone(d.fillable)
}

// HiddenColumns returns a copy of the hidden column list.
func (d *Definition) HiddenColumns() []string {
	return slices.Clone(d.hidden)
}

// New returns a detached instance filled with attrs.
// Detached instances serialize normally but cannot be persisted;
// use Repository.New for an instance bound to a connection.
func (d *Definition) New(attrs Attributes) *Model {
	m := &Model{def: d, attrs: make(Attributes)}
	return m.Fill(attrs)
}
