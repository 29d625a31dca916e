package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/access"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dashboard"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/fakes"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
)

// 2024-03-10 10:30 IST
var now = time.Date(2024, 3, 10, 5, 0, 0, 0, time.UTC)

func setup() (*dashboard.DashboardUseCase, *fakes.Stores) {
	stores := fakes.NewStores(
		&entity.Store{ID: "s1", Name: "Sharma Kirana", OwnerID: "owner-1", IsActive: true, CreatedAt: time.Unix(100, 0)},
		&entity.Store{ID: "s2", Name: "Gupta General", OwnerID: "owner-2", IsActive: false, CreatedAt: time.Unix(200, 0)},
	)
	products := fakes.NewProducts(
		&entity.Product{ID: "p1", StoreID: "s1", Name: "Rice", StockQuantity: 50, MinStockLevel: 10, IsActive: true},
		&entity.Product{ID: "p2", StoreID: "s1", Name: "Salt", StockQuantity: 2, MinStockLevel: 5, IsActive: true},
		&entity.Product{ID: "p3", StoreID: "s2", Name: "Dal", StockQuantity: 0, MinStockLevel: 5, IsActive: true},
	)
	sales := fakes.NewSales()
	sales.Put(&entity.Sale{ID: "a", StoreID: "s1", TotalAmount: decimal.NewFromInt(210), CreatedAt: now.Add(-time.Hour)})
	sales.Put(&entity.Sale{ID: "b", StoreID: "s1", TotalAmount: decimal.RequireFromString("99.50"), CreatedAt: now})
	// 23:00 IST the previous day
	sales.Put(&entity.Sale{ID: "c", StoreID: "s1", TotalAmount: decimal.NewFromInt(500), CreatedAt: time.Date(2024, 3, 9, 17, 30, 0, 0, time.UTC)})
	sales.Put(&entity.Sale{ID: "d", StoreID: "s2", TotalAmount: decimal.NewFromInt(70), CreatedAt: now})

	roles := fakes.NewRoles().Grant("admin-1", entity.RoleAdmin)
	uc := dashboard.NewDashboardUseCase(stores, products, sales, access.NewGuard(roles, stores)).
		WithClock(func() time.Time { return now })
	return uc, stores
}

func TestStartOfDay(t *testing.T) {
	got := dashboard.StartOfDay(now)
	assert.True(t, got.Equal(time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)))
}

func TestStoreSummary(t *testing.T) {
	uc, _ := setup()

	out, err := uc.StoreSummary(context.Background(), access.Caller{UserID: "owner-1"})
	require.NoError(t, err)
	assert.Equal(t, "s1", out.Store.ID)
	assert.True(t, out.TodaySales.Equal(decimal.RequireFromString("309.50")), out.TodaySales.String())
	assert.Equal(t, 2, out.TotalProducts)
	assert.Equal(t, 1, out.LowStockCount)
}

func TestStoreSummary_Rejections(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()

	_, err := uc.StoreSummary(ctx, access.Caller{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.StoreSummary(ctx, access.Caller{UserID: "stranger"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.StoreSummary(ctx, access.Caller{UserID: "owner-2"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAdminSummary(t *testing.T) {
	uc, _ := setup()

	out, err := uc.AdminSummary(context.Background(), access.Caller{UserID: "admin-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.TotalStores)
	assert.Equal(t, 1, out.ActiveStores)
	require.Len(t, out.Stores, 2)

	_, err = uc.AdminSummary(context.Background(), access.Caller{UserID: "owner-1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
