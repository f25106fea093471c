package model

import (
	"context"
	"maps"
)

// Kind identifies a relation type.
type Kind string

const (
	KindBelongsTo Kind = "belongs_to"
	KindHasOne    Kind = "has_one"
	KindHasMany   Kind = "has_many"
)

// Relation is the behaviour shared by every association kind.
// Each kind adds its own Get and Update with a kind-specific result.
type Relation interface {
	// Kind reports the association type.
	Kind() Kind

	// Related returns the definition on the other side of the association.
	Related() *Definition

	// Has reports whether the related row exists by attempting to fetch it.
	Has(ctx context.Context) (bool, error)

	// Create inserts a related row linked to the owner.
	Create(ctx context.Context, attrs Attributes) (*Model, error)

	// Delete removes the related row(s).
	Delete(ctx context.Context) error
}

// RelationOption configures the keys of a relation.
type RelationOption func(*relation)

// ForeignKey sets the foreign key column.
func ForeignKey(column string) RelationOption {
	return func(r *relation) {
		if column != "" {
			r.foreignKey = column
		}
	}
}

// OwnerKey sets the column the foreign key points at. Defaults to "id".
func OwnerKey(column string) RelationOption {
	return func(r *relation) {
		if column != "" {
			r.ownerKey = column
		}
	}
}

// relation holds the keys and endpoints common to every kind.
type relation struct {
	owner      *Model
	related    *Definition
	foreignKey string
	ownerKey   string
}

func newRelation(owner *Model, related *Definition, defaultFK string, opts []RelationOption) relation {
	r := relation{
		owner:      owner,
		related:    related,
		foreignKey: defaultFK,
		ownerKey:   DefaultPrimaryKey,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Related returns the definition on the other side of the association.
func (r relation) Related() *Definition {
	return r.related
}

// ForeignKey returns the foreign key column.
func (r relation) ForeignKey() string {
	return r.foreignKey
}

// OwnerKey returns the column referenced by the foreign key.
func (r relation) OwnerKey() string {
	return r.ownerKey
}

// relatedRepository returns a repository for the related definition on the owner's connection.
func (r relation) relatedRepository() (*Repository, error) {
	repo, err := r.owner.repository()
	if err != nil {
		return nil, err
	}
	return repo.conn.Table(r.related), nil
}

// BelongsTo returns the association from this child to its parent.
// The foreign key defaults to "<parent table>_id" on this model.
func (m *Model) BelongsTo(parent *Definition, opts ...RelationOption) *BelongsTo {
	return &BelongsTo{relation: newRelation(m, parent, parent.Table()+"_id", opts)}
}

// HasOne returns the association from this parent to a single child.
// The foreign key defaults to "<this table>_id" on the child.
func (m *Model) HasOne(child *Definition, opts ...RelationOption) *HasOne {
	return &HasOne{relation: newRelation(m, child, m.def.Table()+"_id", opts)}
}

// HasMany returns the association from this parent to its children.
// The foreign key defaults to "<this table>_id" on the children.
func (m *Model) HasMany(child *Definition, opts ...RelationOption) *HasMany {
	return &HasMany{relation: newRelation(m, child, m.def.Table()+"_id", opts)}
}

// withForeignKey copies attrs and links them to value through the foreign key.
func withForeignKey(attrs Attributes, fk string, value any) Attributes {
	data := maps.Clone(attrs)
	if data == nil {
		data = make(Attributes, 1)
	}
	data[fk] = value
	return data
}
