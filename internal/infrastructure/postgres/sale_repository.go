package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, store_id, cashier_id, sale_number, COALESCE(customer_name, ''), COALESCE(customer_phone, ''),
	payment_method, subtotal, tax_amount, discount_amount, total_amount, status, created_at`

// SaleRepo SaleRepository on PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository builds the adapter over a pool or a tx.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.StoreID, &s.CashierID, &s.SaleNumber, &s.CustomerName, &s.CustomerPhone,
		&s.PaymentMethod, &s.Subtotal, &s.TaxAmount, &s.DiscountAmount, &s.TotalAmount, &s.Status, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, store_id, cashier_id, sale_number, customer_name, customer_phone, payment_method,
			subtotal, tax_amount, discount_amount, total_amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		s.ID, s.StoreID, s.CashierID, s.SaleNumber, nullIfEmpty(s.CustomerName), nullIfEmpty(s.CustomerPhone),
		s.PaymentMethod, s.Subtotal, s.TaxAmount, s.DiscountAmount, s.TotalAmount, s.Status, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItems inserts all lines in one round trip.
func (r *SaleRepo) CreateItems(ctx context.Context, items []*entity.SaleItem) error {
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(`
			INSERT INTO sale_items (id, sale_id, product_id, product_name, quantity, unit_price, tax_rate, total_price, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.ID, it.SaleID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.TaxRate, it.TotalPrice, it.CreatedAt)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID returns (nil, nil) when the sale does not exist.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

func (r *SaleRepo) GetItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, product_name, quantity, unit_price, tax_rate, total_price, created_at
		FROM sale_items WHERE sale_id = $1 ORDER BY created_at, id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var items []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.Quantity,
			&it.UnitPrice, &it.TaxRate, &it.TotalPrice, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (r *SaleRepo) ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM sales WHERE store_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SaleRepo) SumTotalSince(ctx context.Context, storeID string, since time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount), 0) FROM sales
		WHERE store_id = $1 AND created_at >= $2`, storeID, since).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum sales: %w", err)
	}
	return total, nil
}
