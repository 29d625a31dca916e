package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest input for a new product.
// ExpiryDate uses the YYYY-MM-DD layout.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Barcode       string          `json:"barcode"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	StockQuantity int             `json:"stock_quantity"`
	MinStockLevel int             `json:"min_stock_level"`
	Unit          string          `json:"unit"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	ExpiryDate    string          `json:"expiry_date,omitempty"`
}

// UpdateProductRequest partial update; nil fields are left unchanged.
// An empty ExpiryDate string clears the date.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	SKU           *string          `json:"sku"`
	Barcode       *string          `json:"barcode"`
	Category      *string          `json:"category"`
	Price         *decimal.Decimal `json:"price"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	StockQuantity *int             `json:"stock_quantity"`
	MinStockLevel *int             `json:"min_stock_level"`
	Unit          *string          `json:"unit"`
	TaxRate       *decimal.Decimal `json:"tax_rate"`
	ExpiryDate    *string          `json:"expiry_date"`
	IsActive      *bool            `json:"is_active"`
}

// QuickAddProductRequest the four-field quick-add form.
type QuickAddProductRequest struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
}

// ProductResponse product plus derived flags.
type ProductResponse struct {
	ID            string          `json:"id"`
	StoreID       string          `json:"store_id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku,omitempty"`
	Barcode       string          `json:"barcode,omitempty"`
	Category      string          `json:"category,omitempty"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	StockQuantity int             `json:"stock_quantity"`
	MinStockLevel int             `json:"min_stock_level"`
	Unit          string          `json:"unit"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	ExpiryDate    string          `json:"expiry_date,omitempty"`
	IsActive      bool            `json:"is_active"`
	LowStock      bool            `json:"low_stock"`
	ExpiryStatus  string          `json:"expiry_status,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse paginated products.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
