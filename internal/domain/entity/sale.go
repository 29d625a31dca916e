package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale statuses.
const (
	SaleStatusCompleted = "completed"
)

// Payment methods accepted at the counter.
const (
	PaymentCash = "cash"
	PaymentCard = "card"
	PaymentUPI  = "upi"
)

// ValidPaymentMethod reports whether m is one of the accepted payment methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI:
		return true
	}
	return false
}

// Sale header of a completed checkout.
// TotalAmount = Subtotal + TaxAmount - DiscountAmount.
type Sale struct {
	ID             string
	StoreID        string
	CashierID      string
	SaleNumber     string
	CustomerName   string
	CustomerPhone  string
	PaymentMethod  string
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	Status         string
	CreatedAt      time.Time
}
