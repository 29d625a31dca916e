package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/access"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dto"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/pos"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/repository"
)

// CheckoutUseCase rings up sales and lists a store's sales history.
type CheckoutUseCase struct {
	products repository.ProductRepository
	sales    repository.SaleRepository
	guard    *access.Guard
	tx       TxRunner
	rec      Recorder
	log      zerolog.Logger
	now      func() time.Time
}

// NewCheckoutUseCase builds the use case. rec may be nil.
func NewCheckoutUseCase(
	products repository.ProductRepository,
	sales repository.SaleRepository,
	guard *access.Guard,
	tx TxRunner,
	rec Recorder,
	log zerolog.Logger,
) *CheckoutUseCase {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &CheckoutUseCase{
		products: products,
		sales:    sales,
		guard:    guard,
		tx:       tx,
		rec:      rec,
		log:      log,
		now:      time.Now,
	}
}

// WithClock replaces time.Now (tests).
func (uc *CheckoutUseCase) WithClock(now func() time.Time) *CheckoutUseCase {
	uc.now = now
	return uc
}

// CompleteSale validates the cart against current stock and commits the sale,
// its items and the stock decrements in a single transaction.
func (uc *CheckoutUseCase) CompleteSale(ctx context.Context, caller access.Caller, storeID string, in dto.CompleteSaleRequest) (out *dto.SaleResponse, err error) {
	defer func() {
		if err != nil {
			uc.rec.CheckoutFailed(err)
		}
	}()

	if err := access.RequireCaller(caller); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if _, err := uc.guard.Store(ctx, caller, storeID); err != nil {
		return nil, err
	}

	cart, err := uc.buildCart(ctx, storeID, in.Items)
	if err != nil {
		return nil, err
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: payment_method must be cash, card or upi", domain.ErrInvalidInput)
	}
	totals := cart.ComputeTotals(in.Discount)
	if err := pos.ValidateDiscount(in.Discount, totals); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	sale := &entity.Sale{
		ID:             uuid.New().String(),
		StoreID:        storeID,
		CashierID:      caller.UserID,
		SaleNumber:     fmt.Sprintf("SALE-%d", now.UnixMilli()),
		CustomerName:   in.CustomerName,
		CustomerPhone:  in.CustomerPhone,
		PaymentMethod:  in.PaymentMethod,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.Tax,
		DiscountAmount: totals.Discount,
		TotalAmount:    totals.Total,
		Status:         entity.SaleStatusCompleted,
		CreatedAt:      now,
	}
	lines := cart.Lines()
	items := make([]*entity.SaleItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, &entity.SaleItem{
			ID:          uuid.New().String(),
			SaleID:      sale.ID,
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.Product.Price,
			TaxRate:     l.Product.TaxRate,
			TotalPrice:  l.Amount(),
			CreatedAt:   now,
		})
	}

	err = uc.tx.RunCheckout(ctx, func(sales repository.SaleRepository, products repository.ProductRepository) error {
		if err := sales.Create(ctx, sale); err != nil {
			return err
		}
		if err := sales.CreateItems(ctx, items); err != nil {
			return err
		}
		for _, it := range items {
			if err := products.DecrementStock(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("store_id", storeID).Str("sale_number", sale.SaleNumber).Msg("checkout rolled back")
		return nil, err
	}

	uc.rec.SaleCompleted(sale.TotalAmount)
	uc.log.Info().
		Str("store_id", storeID).
		Str("sale_id", sale.ID).
		Str("sale_number", sale.SaleNumber).
		Str("total", sale.TotalAmount.StringFixed(2)).
		Int("lines", len(items)).
		Msg("sale completed")

	resp := ToSaleResponse(sale, items)
	return &resp, nil
}

// buildCart rebuilds the cart from fresh product snapshots. Repeated product
// ids are merged; a quantity above the snapshot stock is rejected.
func (uc *CheckoutUseCase) buildCart(ctx context.Context, storeID string, lines []dto.SaleLineRequest) (*pos.Cart, error) {
	cart := pos.NewCart()
	for _, line := range lines {
		if line.ProductID == "" || line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: each item needs a product_id and a positive quantity", domain.ErrInvalidInput)
		}
		p, err := uc.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil || p.StoreID != storeID || !p.IsActive {
			return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, line.ProductID)
		}
		if err := cart.AddItem(p); err != nil {
			return nil, err
		}
		want := cart.Quantity(p.ID) - 1 + line.Quantity
		if want > p.StockQuantity {
			return nil, fmt.Errorf("%w: %s has %d in stock, %d requested", domain.ErrInsufficientStock, p.Name, p.StockQuantity, want)
		}
		if err := cart.SetQuantity(p.ID, want); err != nil {
			return nil, err
		}
	}
	return cart, nil
}

// ListSales returns the store's sales newest first, without items.
func (uc *CheckoutUseCase) ListSales(ctx context.Context, caller access.Caller, storeID string, page dto.PageRequest) (*dto.SaleListResponse, error) {
	if _, err := uc.guard.Store(ctx, caller, storeID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.sales.ListByStore(ctx, storeID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, ToSaleResponse(s, nil))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ToSaleResponse maps a sale and its items to the API shape.
func ToSaleResponse(s *entity.Sale, items []*entity.SaleItem) dto.SaleResponse {
	out := dto.SaleResponse{
		ID:             s.ID,
		StoreID:        s.StoreID,
		CashierID:      s.CashierID,
		SaleNumber:     s.SaleNumber,
		CustomerName:   s.CustomerName,
		CustomerPhone:  s.CustomerPhone,
		PaymentMethod:  s.PaymentMethod,
		Subtotal:       s.Subtotal,
		TaxAmount:      s.TaxAmount,
		DiscountAmount: s.DiscountAmount,
		TotalAmount:    s.TotalAmount,
		Status:         s.Status,
		CreatedAt:      s.CreatedAt,
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			TotalPrice:  it.TotalPrice,
		})
	}
	return out
}
