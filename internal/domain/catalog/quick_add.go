package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
)

// QuickTemplate preset unit and GST rate for common kirana items.
type QuickTemplate struct {
	Name     string
	Category string
	Unit     string
	TaxRate  decimal.Decimal
}

// QuickTemplates in match order.
var QuickTemplates = []QuickTemplate{
	{Name: "Rice (1kg)", Category: "Food", Unit: "kg", TaxRate: decimal.Zero},
	{Name: "Dal (1kg)", Category: "Food", Unit: "kg", TaxRate: decimal.Zero},
	{Name: "Cooking Oil (1L)", Category: "Food", Unit: "liter", TaxRate: decimal.NewFromInt(5)},
	{Name: "Milk (1L)", Category: "Beverages", Unit: "liter", TaxRate: decimal.Zero},
	{Name: "Biscuits (Pack)", Category: "Food", Unit: "pack", TaxRate: decimal.NewFromInt(12)},
	{Name: "Bread (Pack)", Category: "Food", Unit: "pack", TaxRate: decimal.Zero},
}

// Quick-add defaults.
var (
	QuickCostRatio     = decimal.RequireFromString("0.85")
	QuickDefaultTax    = decimal.NewFromInt(5)
	QuickMinStockLevel = 5
)

// MatchTemplate returns the first template whose leading word appears in name.
func MatchTemplate(name string) (QuickTemplate, bool) {
	lower := strings.ToLower(name)
	for _, t := range QuickTemplates {
		key := strings.ToLower(strings.Fields(t.Name)[0])
		if strings.Contains(lower, key) {
			return t, true
		}
	}
	return QuickTemplate{}, false
}

// QuickProduct fills a new product from the four quick-add inputs.
func QuickProduct(storeID, name, category string, price decimal.Decimal, stock int, now time.Time) (*entity.Product, error) {
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be greater than 0", domain.ErrInvalidInput)
	}
	p := &entity.Product{
		StoreID:       storeID,
		Name:          name,
		Category:      category,
		Price:         price,
		CostPrice:     price.Mul(QuickCostRatio).Round(2),
		StockQuantity: stock,
		MinStockLevel: QuickMinStockLevel,
		Unit:          entity.DefaultUnit,
		TaxRate:       QuickDefaultTax,
		SKU:           fmt.Sprintf("SKU-%d", now.UnixMilli()),
		IsActive:      true,
	}
	if t, ok := MatchTemplate(name); ok {
		p.Unit = t.Unit
		p.TaxRate = t.TaxRate
		if p.Category == "" {
			p.Category = t.Category
		}
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}
