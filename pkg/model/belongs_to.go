package model

import (
	"context"
	"errors"
)

// BelongsTo resolves the parent row referenced by the owner's foreign key.
type BelongsTo struct {
	relation
}

var _ Relation = (*BelongsTo)(nil)

// Kind reports KindBelongsTo.
func (r *BelongsTo) Kind() Kind {
	return KindBelongsTo
}

// Get returns the parent row.
// Unlike HasOne.Get, a missing parent is an error: ErrParentNotFound.
func (r *BelongsTo) Get(ctx context.Context) (*Model, error) {
	repo, err := r.relatedRepository()
	if err != nil {
		return nil, err
	}
	fk, _ := r.owner.Get(r.foreignKey)
	parent, err := repo.First(ctx, r.ownerKey, fk)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrParentNotFound
	}
	return parent, nil
}

// Has reports whether the parent row exists.
func (r *BelongsTo) Has(ctx context.Context) (bool, error) {
	_, err := r.Get(ctx)
	if errors.Is(err, ErrParentNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Create always fails with ErrCannotCreateParent.
func (r *BelongsTo) Create(context.Context, Attributes) (*Model, error) {
	return nil, ErrCannotCreateParent
}

// Update writes attrs to the parent row and returns the refreshed parent.
func (r *BelongsTo) Update(ctx context.Context, attrs Attributes) (*Model, error) {
	parent, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := parent.Update(ctx, attrs); err != nil {
		return nil, err
	}
	return parent, nil
}

// Delete always fails with ErrCannotDeleteParent.
func (r *BelongsTo) Delete(context.Context) error {
	return ErrCannotDeleteParent
}
