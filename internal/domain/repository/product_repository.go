package repository

import (
	"context"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
)

// ProductFilter narrows a store's product listing.
// Query matches name, sku or barcode case-insensitively when non-empty.
type ProductFilter struct {
	StoreID string
	Query   string
	Limit   int
	Offset  int
}

// ProductRepository persistence port for Product.
// GetByID returns (nil, nil) when the row does not exist.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// ListSellable active products with stock, ordered by name (POS grid).
	ListSellable(ctx context.Context, storeID string) ([]*entity.Product, error)
	CountByStore(ctx context.Context, storeID string) (int, error)
	CountLowStock(ctx context.Context, storeID string) (int, error)
	// DecrementStock subtracts qty only if enough stock remains;
	// otherwise returns domain.ErrInsufficientStock and changes nothing.
	DecrementStock(ctx context.Context, productID string, qty int) error
}
