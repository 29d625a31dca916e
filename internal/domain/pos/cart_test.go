package pos_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/pos"
)

func product(id string, price, tax string, stock int) *entity.Product {
	return &entity.Product{
		ID:            id,
		Name:          "item-" + id,
		Price:         decimal.RequireFromString(price),
		TaxRate:       decimal.RequireFromString(tax),
		StockQuantity: stock,
		IsActive:      true,
	}
}

func TestCart_AddItem_NeverExceedsStock(t *testing.T) {
	c := pos.NewCart()
	p := product("p1", "10", "0", 3)

	for i := 0; i < 3; i++ {
		require.NoError(t, c.AddItem(p))
	}
	err := c.AddItem(p)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, c.Quantity("p1"), "failed add leaves the cart unchanged")
}

func TestCart_AddItem_UsesFirstSnapshot(t *testing.T) {
	c := pos.NewCart()
	p := product("p1", "10", "0", 1)
	require.NoError(t, c.AddItem(p))

	// stock refreshed elsewhere does not raise the ceiling of an existing line
	p.StockQuantity = 10
	require.ErrorIs(t, c.AddItem(p), domain.ErrInsufficientStock)
}

func TestCart_AddItem_OutOfStock(t *testing.T) {
	c := pos.NewCart()
	require.ErrorIs(t, c.AddItem(product("p1", "10", "0", 0)), domain.ErrInsufficientStock)
	assert.True(t, c.IsEmpty())
}

func TestCart_SetQuantity(t *testing.T) {
	c := pos.NewCart()
	require.NoError(t, c.AddItem(product("p1", "10", "0", 4)))

	require.NoError(t, c.SetQuantity("p1", 99))
	assert.Equal(t, 4, c.Quantity("p1"), "clamped to stock")

	require.NoError(t, c.SetQuantity("p1", 2))
	assert.Equal(t, 2, c.Quantity("p1"))

	require.NoError(t, c.SetQuantity("p1", 0))
	assert.True(t, c.IsEmpty())

	assert.ErrorIs(t, c.SetQuantity("missing", 1), pos.ErrNotInCart)
}

func TestCart_LinesKeepInsertionOrder(t *testing.T) {
	c := pos.NewCart()
	for _, id := range []string{"b", "a", "c"} {
		require.NoError(t, c.AddItem(product(id, "1", "0", 5)))
	}
	c.Remove("a")
	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "b", lines[0].Product.ID)
	assert.Equal(t, "c", lines[1].Product.ID)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCart_ComputeTotals_Example(t *testing.T) {
	c := pos.NewCart()
	require.NoError(t, c.AddItem(product("p1", "100", "5", 10)))
	require.NoError(t, c.SetQuantity("p1", 2))

	got := c.ComputeTotals(decimal.Zero)
	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(200)), got.Subtotal.String())
	assert.True(t, got.Tax.Equal(decimal.NewFromInt(10)), got.Tax.String())
	assert.True(t, got.Total.Equal(decimal.NewFromInt(210)), got.Total.String())
}

func TestCart_ComputeTotals_Identity(t *testing.T) {
	c := pos.NewCart()
	require.NoError(t, c.AddItem(product("a", "33.33", "12", 10)))
	require.NoError(t, c.AddItem(product("b", "0.99", "5", 10)))
	require.NoError(t, c.SetQuantity("b", 7))
	require.NoError(t, c.AddItem(product("c", "49.50", "18", 10)))

	for _, d := range []string{"0", "1.01", "25", "10.5"} {
		discount := decimal.RequireFromString(d)
		got := c.ComputeTotals(discount)
		assert.True(t, got.Total.Equal(got.Subtotal.Add(got.Tax).Sub(discount)), "discount %s", d)
		assert.True(t, got.Discount.Equal(discount))
	}
}

func TestValidateDiscount(t *testing.T) {
	c := pos.NewCart()
	require.NoError(t, c.AddItem(product("p1", "100", "5", 10)))
	totals := c.ComputeTotals(decimal.Zero) // 105

	assert.NoError(t, pos.ValidateDiscount(decimal.Zero, totals))
	assert.NoError(t, pos.ValidateDiscount(decimal.NewFromInt(105), totals))
	assert.ErrorIs(t, pos.ValidateDiscount(decimal.NewFromInt(-1), totals), domain.ErrInvalidDiscount)
	assert.ErrorIs(t, pos.ValidateDiscount(decimal.RequireFromString("105.01"), totals), domain.ErrInvalidDiscount)
}
