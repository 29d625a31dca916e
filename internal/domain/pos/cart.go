// Package pos holds the counter-side cart used to ring up a sale.
package pos

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
)

// ErrNotInCart the product id has no line in the cart.
var ErrNotInCart = errors.New("product not in cart")

var hundred = decimal.NewFromInt(100)

// Line a product snapshot and the quantity being sold.
// The snapshot's StockQuantity is the ceiling for Quantity.
type Line struct {
	Product  entity.Product
	Quantity int
}

// Amount price x quantity, tax exclusive.
func (l Line) Amount() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Tax amount x tax_rate / 100, unrounded.
func (l Line) Tax() decimal.Decimal {
	return l.Amount().Mul(l.Product.TaxRate).Div(hundred)
}

// Cart maps product id to a line, keeping insertion order.
// Not safe for concurrent use.
type Cart struct {
	lines map[string]*Line
	order []string
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{lines: make(map[string]*Line)}
}

// AddItem adds one unit of the product. The product is copied on first add;
// later adds keep the first snapshot.
func (c *Cart) AddItem(p *entity.Product) error {
	if p == nil {
		return fmt.Errorf("%w: nil product", domain.ErrInvalidInput)
	}
	if l, ok := c.lines[p.ID]; ok {
		if l.Quantity+1 > l.Product.StockQuantity {
			return fmt.Errorf("%w: only %d of %s available", domain.ErrInsufficientStock, l.Product.StockQuantity, l.Product.Name)
		}
		l.Quantity++
		return nil
	}
	if p.StockQuantity < 1 {
		return fmt.Errorf("%w: %s is out of stock", domain.ErrInsufficientStock, p.Name)
	}
	c.lines[p.ID] = &Line{Product: *p, Quantity: 1}
	c.order = append(c.order, p.ID)
	return nil
}

// SetQuantity sets the line quantity. qty <= 0 removes the line and
// a qty above the snapshot stock is clamped to it.
func (c *Cart) SetQuantity(productID string, qty int) error {
	l, ok := c.lines[productID]
	if !ok {
		return ErrNotInCart
	}
	if qty <= 0 {
		c.Remove(productID)
		return nil
	}
	if qty > l.Product.StockQuantity {
		qty = l.Product.StockQuantity
	}
	l.Quantity = qty
	return nil
}

// Quantity of the product in the cart, 0 when absent.
func (c *Cart) Quantity(productID string) int {
	if l, ok := c.lines[productID]; ok {
		return l.Quantity
	}
	return 0
}

// Remove drops the line; unknown ids are ignored.
func (c *Cart) Remove(productID string) {
	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = make(map[string]*Line)
	c.order = nil
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

func (c *Cart) Len() int      { return len(c.order) }
func (c *Cart) IsEmpty() bool { return len(c.order) == 0 }

// Totals money summary of a cart. Total = Subtotal + Tax - Discount exactly.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals sums the lines. Tax is rounded to paise once, after summing.
func (c *Cart) ComputeTotals(discount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, id := range c.order {
		l := c.lines[id]
		subtotal = subtotal.Add(l.Amount())
		tax = tax.Add(l.Tax())
	}
	tax = tax.Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: discount,
		Total:    subtotal.Add(tax).Sub(discount),
	}
}

// ValidateDiscount requires 0 <= discount <= subtotal + tax.
func ValidateDiscount(discount decimal.Decimal, t Totals) error {
	if discount.IsNegative() {
		return fmt.Errorf("%w: discount cannot be negative", domain.ErrInvalidDiscount)
	}
	if discount.GreaterThan(t.Subtotal.Add(t.Tax)) {
		return fmt.Errorf("%w: discount %s exceeds bill amount %s", domain.ErrInvalidDiscount,
			discount.StringFixed(2), t.Subtotal.Add(t.Tax).StringFixed(2))
	}
	return nil
}
