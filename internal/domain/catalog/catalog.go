// Package catalog holds the product rules shared by the API and the CLI:
// field validation, expiry status, search matching and quick-add defaults.
package catalog

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
)

// Expiry statuses reported on product reads.
const (
	ExpiryExpired      = "expired"
	ExpiryExpiringSoon = "expiring_soon"
	ExpiryOK           = "ok"
)

// ExpiringSoonDays window in which a product is flagged before it expires.
const ExpiringSoonDays = 30

const (
	maxNameLen = 200
	maxCodeLen = 100
)

var hundred = decimal.NewFromInt(100)

// FieldError one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every invalid field. It matches domain.ErrInvalidInput with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", domain.ErrInvalidInput, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

// Validate checks the writable fields of a product. Unit defaults to "piece" when empty.
func Validate(p *entity.Product) error {
	v := &ValidationError{}
	p.Name = strings.TrimSpace(p.Name)
	switch {
	case p.Name == "":
		v.add("name", "is required")
	case utf8.RuneCountInString(p.Name) > maxNameLen:
		v.add("name", fmt.Sprintf("must be at most %d characters", maxNameLen))
	}
	if utf8.RuneCountInString(p.SKU) > maxCodeLen {
		v.add("sku", fmt.Sprintf("must be at most %d characters", maxCodeLen))
	}
	if utf8.RuneCountInString(p.Barcode) > maxCodeLen {
		v.add("barcode", fmt.Sprintf("must be at most %d characters", maxCodeLen))
	}
	if p.Price.IsNegative() {
		v.add("price", "must be >= 0")
	}
	if p.CostPrice.IsNegative() {
		v.add("cost_price", "must be >= 0")
	}
	if p.StockQuantity < 0 {
		v.add("stock_quantity", "must be >= 0")
	}
	if p.MinStockLevel < 0 {
		v.add("min_stock_level", "must be >= 0")
	}
	if p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(hundred) {
		v.add("tax_rate", "must be between 0 and 100")
	}
	if strings.TrimSpace(p.Unit) == "" {
		p.Unit = entity.DefaultUnit
	}
	if len(v.Fields) > 0 {
		return v
	}
	return nil
}

// ExpiryStatus classifies an expiry date relative to now. Nil expiry yields "".
func ExpiryStatus(expiry *time.Time, now time.Time) string {
	if expiry == nil {
		return ""
	}
	if expiry.Before(now) {
		return ExpiryExpired
	}
	days := math.Ceil(expiry.Sub(now).Hours() / 24)
	if days > 0 && days <= ExpiringSoonDays {
		return ExpiryExpiringSoon
	}
	return ExpiryOK
}

// MatchesQuery reports whether name, sku or barcode contain q, ignoring case.
// An empty query matches everything.
func MatchesQuery(p *entity.Product, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.SKU), q) ||
		strings.Contains(strings.ToLower(p.Barcode), q)
}
