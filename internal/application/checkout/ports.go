package checkout

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/repository"
)

// TxRunner runs fn inside one database transaction. Repositories handed to fn
// are bound to it; a non-nil return rolls everything back.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		sales repository.SaleRepository,
		products repository.ProductRepository,
	) error) error
}

// Recorder receives checkout outcomes (Prometheus in production).
type Recorder interface {
	SaleCompleted(total decimal.Decimal)
	CheckoutFailed(err error)
}

type nopRecorder struct{}

func (nopRecorder) SaleCompleted(decimal.Decimal) {}
func (nopRecorder) CheckoutFailed(error)          {}
