package model

import "context"

// HasOne resolves a single child row pointing back at the owner.
type HasOne struct {
	relation
}

var _ Relation = (*HasOne)(nil)

// Kind reports KindHasOne.
func (r *HasOne) Kind() Kind {
	return KindHasOne
}

// Get returns the child row, or nil without error when the owner has none.
func (r *HasOne) Get(ctx context.Context) (*Model, error) {
	repo, err := r.relatedRepository()
	if err != nil {
		return nil, err
	}
	key, _ := r.owner.Get(r.ownerKey)
	return repo.First(ctx, r.foreignKey, key)
}

// Has reports whether the owner has a child row.
func (r *HasOne) Has(ctx context.Context) (bool, error) {
	child, err := r.Get(ctx)
	if err != nil {
		return false, err
	}
	return child != nil, nil
}

// Create inserts a child row linked to the owner.
func (r *HasOne) Create(ctx context.Context, attrs Attributes) (*Model, error) {
	repo, err := r.relatedRepository()
	if err != nil {
		return nil, err
	}
	key, _ := r.owner.Get(r.ownerKey)
	return repo.Create(ctx, withForeignKey(attrs, r.foreignKey, key))
}

// Update writes attrs to the child row and returns it.
// Returns ErrChildNotFound when the owner has no child.
func (r *HasOne) Update(ctx context.Context, attrs Attributes) (*Model, error) {
	child, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}
	if err := child.Update(ctx, attrs); err != nil {
		return nil, err
	}
	return child, nil
}

// Delete removes the child row.
// Returns ErrChildNotFound when the owner has no child.
func (r *HasOne) Delete(ctx context.Context) error {
	child, err := r.Get(ctx)
	if err != nil {
		return err
	}
	if child == nil {
		return ErrChildNotFound
	}
	return child.Delete(ctx)
}
