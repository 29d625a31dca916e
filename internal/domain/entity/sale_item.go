package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem one immutable line of a sale. ProductName is copied at sale time.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	TotalPrice  decimal.Decimal // UnitPrice x Quantity
	CreatedAt   time.Time
}
