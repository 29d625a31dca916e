package checkout_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/access"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/checkout"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dto"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/fakes"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
)

const (
	storeID = "store-1"
	ownerID = "owner-1"
)

type recorder struct {
	completed int
	failures  []error
}

func (r *recorder) SaleCompleted(decimal.Decimal) { r.completed++ }
func (r *recorder) CheckoutFailed(err error)      { r.failures = append(r.failures, err) }

type fixture struct {
	uc       *checkout.CheckoutUseCase
	products *fakes.Products
	sales    *fakes.Sales
	roles    *fakes.Roles
	tx       *fakes.TxRunner
	rec      *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	products := fakes.NewProducts(
		&entity.Product{ID: "rice", StoreID: storeID, Name: "Rice 1kg", Price: decimal.NewFromInt(100), TaxRate: decimal.NewFromInt(5), StockQuantity: 10, IsActive: true},
		&entity.Product{ID: "salt", StoreID: storeID, Name: "Salt", Price: decimal.NewFromInt(20), TaxRate: decimal.Zero, StockQuantity: 1, IsActive: true},
		&entity.Product{ID: "other", StoreID: "store-2", Name: "Elsewhere", Price: decimal.NewFromInt(1), StockQuantity: 5, IsActive: true},
	)
	stores := fakes.NewStores(&entity.Store{ID: storeID, OwnerID: ownerID, Name: "Sharma Kirana", IsActive: true})
	sales := fakes.NewSales()
	roles := fakes.NewRoles()
	tx := &fakes.TxRunner{Sales: sales, Products: products}
	rec := &recorder{}
	uc := checkout.NewCheckoutUseCase(products, sales, access.NewGuard(roles, stores), tx, rec, zerolog.Nop()).
		WithClock(func() time.Time { return time.UnixMilli(1710000000000) })
	return &fixture{uc: uc, products: products, sales: sales, roles: roles, tx: tx, rec: rec}
}

func owner() access.Caller { return access.Caller{UserID: ownerID} }

func TestCompleteSale_Success(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.CompleteSale(context.Background(), owner(), storeID, dto.CompleteSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "rice", Quantity: 2}},
		PaymentMethod: entity.PaymentUPI,
		Discount:      decimal.Zero,
	})
	require.NoError(t, err)

	assert.Equal(t, "SALE-1710000000000", out.SaleNumber)
	assert.Equal(t, entity.SaleStatusCompleted, out.Status)
	assert.True(t, out.Subtotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, out.TaxAmount.Equal(decimal.NewFromInt(10)))
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(210)))
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Rice 1kg", out.Items[0].ProductName)
	assert.True(t, out.Items[0].TotalPrice.Equal(decimal.NewFromInt(200)))

	assert.Equal(t, 8, f.products.Stock("rice"))
	assert.Equal(t, 1, f.sales.Count())
	assert.Equal(t, 1, f.sales.ItemCount())
	assert.Equal(t, 1, f.rec.completed)
}

func TestCompleteSale_MergesRepeatedLines(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.CompleteSale(context.Background(), owner(), storeID, dto.CompleteSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "rice", Quantity: 1}, {ProductID: "rice", Quantity: 3}},
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 4, out.Items[0].Quantity)
	assert.Equal(t, 6, f.products.Stock("rice"))
}

func TestCompleteSale_EmptyCartWritesNothing(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.CompleteSale(context.Background(), owner(), storeID, dto.CompleteSaleRequest{PaymentMethod: entity.PaymentCash})

	require.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Zero(t, f.tx.Calls)
	assert.Zero(t, f.sales.Count())
	assert.Zero(t, f.products.Writes)
	require.Len(t, f.rec.failures, 1)
}

func TestCompleteSale_RequiresCaller(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.CompleteSale(context.Background(), access.Caller{}, storeID, dto.CompleteSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCompleteSale_ForbiddenForStranger(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.CompleteSale(context.Background(), access.Caller{UserID: "someone"}, storeID, dto.CompleteSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "rice", Quantity: 1}},
		PaymentMethod: entity.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Zero(t, f.tx.Calls)
}

func TestCompleteSale_AdminMaySellForAnyStore(t *testing.T) {
	f := newFixture(t)
	f.roles.Grant("admin-1", entity.RoleAdmin)
	_, err := f.uc.CompleteSale(context.Background(), access.Caller{UserID: "admin-1"}, storeID, dto.CompleteSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "salt", Quantity: 1}},
		PaymentMethod: entity.PaymentCard,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.products.Stock("salt"))
}

func TestCompleteSale_Rejections(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CompleteSaleRequest
		want error
	}{
		{"over stock", dto.CompleteSaleRequest{Items: []dto.SaleLineRequest{{ProductID: "salt", Quantity: 2}}, PaymentMethod: "cash"}, domain.ErrInsufficientStock},
		{"foreign product", dto.CompleteSaleRequest{Items: []dto.SaleLineRequest{{ProductID: "other", Quantity: 1}}, PaymentMethod: "cash"}, domain.ErrNotFound},
		{"unknown product", dto.CompleteSaleRequest{Items: []dto.SaleLineRequest{{ProductID: "nope", Quantity: 1}}, PaymentMethod: "cash"}, domain.ErrNotFound},
		{"zero quantity", dto.CompleteSaleRequest{Items: []dto.SaleLineRequest{{ProductID: "rice", Quantity: 0}}, PaymentMethod: "cash"}, domain.ErrInvalidInput},
		{"bad payment", dto.CompleteSaleRequest{Items: []dto.SaleLineRequest{{ProductID: "rice", Quantity: 1}}, PaymentMethod: "cheque"}, domain.ErrInvalidInput},
		{"negative discount", dto.CompleteSaleRequest{Items: []dto.SaleLineRequest{{ProductID: "rice", Quantity: 1}}, PaymentMethod: "cash", Discount: decimal.NewFromInt(-5)}, domain.ErrInvalidDiscount},
		{"discount above bill", dto.CompleteSaleRequest{Items: []dto.SaleLineRequest{{ProductID: "rice", Quantity: 1}}, PaymentMethod: "cash", Discount: decimal.NewFromInt(106)}, domain.ErrInvalidDiscount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.uc.CompleteSale(context.Background(), owner(), storeID, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, f.tx.Calls)
			assert.Equal(t, 10, f.products.Stock("rice"))
		})
	}
}

func TestCompleteSale_ConcurrentStockLossRollsBack(t *testing.T) {
	f := newFixture(t)
	// salt sells out between the snapshot read and the commit: the conditional
	// decrement fails and the sale rows are rolled back with it
	f.tx.Products = fakes.NewProducts(
		&entity.Product{ID: "rice", StoreID: storeID, StockQuantity: 10, IsActive: true},
		&entity.Product{ID: "salt", StoreID: storeID, StockQuantity: 0, IsActive: true},
	)
	_, err := f.uc.CompleteSale(context.Background(), owner(), storeID, dto.CompleteSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "rice", Quantity: 1}, {ProductID: "salt", Quantity: 1}},
		PaymentMethod: entity.PaymentCash,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, f.tx.Calls)
	assert.Zero(t, f.sales.Count())
	assert.Zero(t, f.sales.ItemCount())
	assert.Equal(t, 10, f.tx.Products.Stock("rice"), "rice decrement rolled back")
}

func TestCompleteSale_ItemInsertFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	f.sales.ItemsErr = errors.New("connection reset")
	_, err := f.uc.CompleteSale(context.Background(), owner(), storeID, dto.CompleteSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "rice", Quantity: 1}},
		PaymentMethod: entity.PaymentCash,
	})
	require.Error(t, err)
	assert.Zero(t, f.sales.Count())
	assert.Equal(t, 10, f.products.Stock("rice"))
}

func TestListSales(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		_, err := f.uc.CompleteSale(context.Background(), owner(), storeID, dto.CompleteSaleRequest{
			Items:         []dto.SaleLineRequest{{ProductID: "rice", Quantity: 1}},
			PaymentMethod: entity.PaymentCash,
		})
		require.NoError(t, err)
	}
	out, err := f.uc.ListSales(context.Background(), owner(), storeID, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 2, out.Page.Limit)

	_, err = f.uc.ListSales(context.Background(), access.Caller{UserID: "x"}, storeID, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
