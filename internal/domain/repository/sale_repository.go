package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
)

// SaleRepository persistence port for Sale and SaleItem.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItems(ctx context.Context, items []*entity.SaleItem) error
	// GetByID returns (nil, nil) when the sale does not exist.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
	// ListByStore newest first.
	ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.Sale, error)
	// SumTotalSince sums total_amount of the store's sales created at or after since.
	SumTotalSince(ctx context.Context, storeID string, since time.Time) (decimal.Decimal, error)
}
