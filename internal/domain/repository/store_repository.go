package repository

import (
	"context"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
)

// StoreRepository persistence port for Store.
// Get* return (nil, nil) when the row does not exist.
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	GetByOwner(ctx context.Context, ownerID string) (*entity.Store, error)
	// List every store, newest first.
	List(ctx context.Context) ([]*entity.Store, error)
	SetActive(ctx context.Context, id string, active bool) error
	// Delete is only used to compensate a failed provisioning.
	Delete(ctx context.Context, id string) error
}
