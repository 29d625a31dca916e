// Package dashboard builds the store owner's landing numbers and the admin
// platform overview.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/access"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dto"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/store"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/repository"
)

// Business day boundaries follow Indian Standard Time.
var ist = time.FixedZone("IST", 5*60*60+30*60)

// DashboardUseCase read-only aggregates over stores, products and sales.
type DashboardUseCase struct {
	stores   repository.StoreRepository
	products repository.ProductRepository
	sales    repository.SaleRepository
	guard    *access.Guard
	now      func() time.Time
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(
	stores repository.StoreRepository,
	products repository.ProductRepository,
	sales repository.SaleRepository,
	guard *access.Guard,
) *DashboardUseCase {
	return &DashboardUseCase{stores: stores, products: products, sales: sales, guard: guard, now: time.Now}
}

// WithClock overrides the clock (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// StartOfDay midnight IST of the day containing t.
func StartOfDay(t time.Time) time.Time {
	t = t.In(ist)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, ist)
}

// StoreSummary resolves the caller's store and runs the three counters in parallel:
//  1. SumTotalSince(today)  → TodaySales
//  2. CountByStore          → TotalProducts
//  3. CountLowStock         → LowStockCount
func (uc *DashboardUseCase) StoreSummary(ctx context.Context, caller access.Caller) (*dto.StoreDashboardResponse, error) {
	if err := access.RequireCaller(caller); err != nil {
		return nil, err
	}
	s, err := uc.stores.GetByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: get store: %w", err)
	}
	if s == nil {
		return nil, fmt.Errorf("%w: no store for this account", domain.ErrNotFound)
	}
	if !s.IsActive {
		return nil, domain.ErrForbidden
	}

	type sumResult struct {
		total decimal.Decimal
		err   error
	}
	type countResult struct {
		n   int
		err error
	}

	salesCh := make(chan sumResult, 1)
	productsCh := make(chan countResult, 1)
	lowCh := make(chan countResult, 1)

	since := StartOfDay(uc.now())
	go func() {
		total, err := uc.sales.SumTotalSince(ctx, s.ID, since)
		salesCh <- sumResult{total, err}
	}()
	go func() {
		n, err := uc.products.CountByStore(ctx, s.ID)
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.products.CountLowStock(ctx, s.ID)
		lowCh <- countResult{n, err}
	}()

	today := <-salesCh
	products := <-productsCh
	low := <-lowCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: today's sales: %w", today.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: product count: %w", products.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: low stock count: %w", low.err)
	}

	return &dto.StoreDashboardResponse{
		Store:         store.ToStoreResponse(s),
		TodaySales:    today.total.Round(2),
		TotalProducts: products.n,
		LowStockCount: low.n,
	}, nil
}

// AdminSummary platform totals. Admin only.
func (uc *DashboardUseCase) AdminSummary(ctx context.Context, caller access.Caller) (*dto.AdminDashboardResponse, error) {
	if err := uc.guard.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	list, err := uc.stores.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list stores: %w", err)
	}
	out := &dto.AdminDashboardResponse{
		TotalStores: len(list),
		Stores:      make([]dto.StoreResponse, 0, len(list)),
	}
	for _, s := range list {
		if s.IsActive {
			out.ActiveStores++
		}
		out.Stores = append(out.Stores, store.ToStoreResponse(s))
	}
	return out, nil
}
