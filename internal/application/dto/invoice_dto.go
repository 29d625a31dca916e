package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStore seller block of an invoice.
type InvoiceStore struct {
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	GSTNumber string `json:"gst_number,omitempty"`
}

// InvoiceLine one printed line.
type InvoiceLine struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// InvoiceResponse printable projection of a sale. Discount is omitted when zero.
type InvoiceResponse struct {
	Store         InvoiceStore     `json:"store"`
	SaleID        string           `json:"sale_id"`
	SaleNumber    string           `json:"sale_number"`
	Date          time.Time        `json:"date"`
	CustomerName  string           `json:"customer_name,omitempty"`
	CustomerPhone string           `json:"customer_phone,omitempty"`
	Items         []InvoiceLine    `json:"items"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	TaxAmount     decimal.Decimal  `json:"tax_amount"`
	Discount      *decimal.Decimal `json:"discount,omitempty"`
	Total         decimal.Decimal  `json:"total"`
	PaymentMethod string           `json:"payment_method"`
}
