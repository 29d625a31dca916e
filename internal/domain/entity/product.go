package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultUnit unit used when a product is created without one.
const DefaultUnit = "piece"

// Product an inventory row of a store.
// StockQuantity and MinStockLevel are never negative (CHECK constraints in the schema).
type Product struct {
	ID            string
	StoreID       string
	Name          string
	SKU           string // optional, merchant-defined
	Barcode       string // optional
	Category      string
	Price         decimal.Decimal // selling price, tax exclusive
	CostPrice     decimal.Decimal
	StockQuantity int
	MinStockLevel int
	Unit          string          // piece, kg, liter, pack...
	TaxRate       decimal.Decimal // GST percent: 0..100
	ExpiryDate    *time.Time
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock reports stock at or below the minimum level.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinStockLevel
}
