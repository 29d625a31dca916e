package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest one cart line sent by the counter.
type SaleLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CompleteSaleRequest checkout input. PaymentMethod is cash, card or upi.
type CompleteSaleRequest struct {
	Items         []SaleLineRequest `json:"items"`
	CustomerName  string            `json:"customer_name,omitempty"`
	CustomerPhone string            `json:"customer_phone,omitempty"`
	PaymentMethod string            `json:"payment_method"`
	Discount      decimal.Decimal   `json:"discount"`
}

// SaleItemResponse one sold line.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// SaleResponse a committed sale; Items is omitted in listings.
type SaleResponse struct {
	ID             string             `json:"id"`
	StoreID        string             `json:"store_id"`
	CashierID      string             `json:"cashier_id"`
	SaleNumber     string             `json:"sale_number"`
	CustomerName   string             `json:"customer_name,omitempty"`
	CustomerPhone  string             `json:"customer_phone,omitempty"`
	PaymentMethod  string             `json:"payment_method"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	Status         string             `json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
	Items          []SaleItemResponse `json:"items,omitempty"`
}

// SaleListResponse paginated sales history.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
