package model

import "context"

// HasMany resolves every child row pointing back at the owner.
type HasMany struct {
	relation
}

var _ Relation = (*HasMany)(nil)

// Kind reports KindHasMany.
func (r *HasMany) Kind() Kind {
	return KindHasMany
}

// Get returns the child rows; an owner without children yields an empty slice.
func (r *HasMany) Get(ctx context.Context) ([]*Model, error) {
	repo, err := r.relatedRepository()
	if err != nil {
		return nil, err
	}
	key, _ := r.owner.Get(r.ownerKey)
	return repo.Where(ctx, r.foreignKey, key)
}

// Has reports whether the owner has at least one child.
func (r *HasMany) Has(ctx context.Context) (bool, error) {
	children, err := r.Get(ctx)
	if err != nil {
		return false, err
	}
	return len(children) > 0, nil
}

// Create inserts a child row linked to the owner.
func (r *HasMany) Create(ctx context.Context, attrs Attributes) (*Model, error) {
	repo, err := r.relatedRepository()
	if err != nil {
		return nil, err
	}
	key, _ := r.owner.Get(r.ownerKey)
	return repo.Create(ctx, withForeignKey(attrs, r.foreignKey, key))
}

// Update writes attrs to every child row and returns them refreshed.
func (r *HasMany) Update(ctx context.Context, attrs Attributes) ([]*Model, error) {
	children, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		if err := child.Update(ctx, attrs); err != nil {
			return nil, err
		}
	}
	return children, nil
}

// Delete removes every child row in a single statement.
func (r *HasMany) Delete(ctx context.Context) error {
	children, err := r.Get(ctx)
	if err != nil {
		return err
	}
	if len(children) == 0 {
		return nil
	}
	repo, err := r.relatedRepository()
	if err != nil {
		return err
	}
	ids := make([]any, len(children))
	for i, c := range children {
		ids[i] = c
	}
	return repo.DeleteMany(ctx, ids...)
}
