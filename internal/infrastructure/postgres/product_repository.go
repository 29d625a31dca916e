package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, store_id, name, COALESCE(sku, ''), COALESCE(barcode, ''), COALESCE(category, ''),
	price, cost_price, stock_quantity, min_stock_level, unit, tax_rate, expiry_date, is_active, created_at, updated_at`

// ProductRepo ProductRepository on PostgreSQL. Works with a pool or a tx.
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the adapter over a pool or a tx.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.StoreID, &p.Name, &p.SKU, &p.Barcode, &p.Category,
		&p.Price, &p.CostPrice, &p.StockQuantity, &p.MinStockLevel, &p.Unit, &p.TaxRate,
		&p.ExpiryDate, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, store_id, name, sku, barcode, category, price, cost_price,
			stock_quantity, min_stock_level, unit, tax_rate, expiry_date, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.StoreID, p.Name, nullIfEmpty(p.SKU), nullIfEmpty(p.Barcode), nullIfEmpty(p.Category),
		p.Price, p.CostPrice, p.StockQuantity, p.MinStockLevel, p.Unit, p.TaxRate,
		p.ExpiryDate, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID returns (nil, nil) when the product does not exist.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update overwrites every writable column. Returns ErrNotFound when no row matched.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	if _, ok := parseID(p.ID); !ok {
		return domain.ErrNotFound
	}
	query := `
		UPDATE products SET name = $2, sku = $3, barcode = $4, category = $5, price = $6, cost_price = $7,
			stock_quantity = $8, min_stock_level = $9, unit = $10, tax_rate = $11, expiry_date = $12,
			is_active = $13, updated_at = $14
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, nullIfEmpty(p.SKU), nullIfEmpty(p.Barcode), nullIfEmpty(p.Category),
		p.Price, p.CostPrice, p.StockQuantity, p.MinStockLevel, p.Unit, p.TaxRate, p.ExpiryDate,
		p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the product. Products referenced by past sale lines are
// kept and reported as ErrConflict; deactivate them instead.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	id, ok := parseID(id)
	if !ok {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: product has sales history, deactivate it instead", domain.ErrConflict)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List the store's products newest first, optionally filtered by name/sku/barcode.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE store_id = $1`
	args := []any{f.StoreID}
	if f.Query != "" {
		query += ` AND (name ILIKE $2 OR sku ILIKE $2 OR barcode ILIKE $2)`
		args = append(args, containsPattern(f.Query))
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)
	return r.list(ctx, query, args...)
}

// ListSellable active products with stock, by name.
func (r *ProductRepo) ListSellable(ctx context.Context, storeID string) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products
		WHERE store_id = $1 AND is_active AND stock_quantity > 0 ORDER BY name`, storeID)
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) CountByStore(ctx context.Context, storeID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products WHERE store_id = $1`, storeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *ProductRepo) CountLowStock(ctx context.Context, storeID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM products WHERE store_id = $1 AND stock_quantity <= min_stock_level`, storeID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

// DecrementStock is a conditional update: it only succeeds when enough stock remains,
// so two checkouts racing for the last units cannot both win.
func (r *ProductRepo) DecrementStock(ctx context.Context, productID string, qty int) error {
	if _, ok := parseID(productID); !ok {
		return fmt.Errorf("%w: product %s", domain.ErrNotFound, productID)
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET stock_quantity = stock_quantity - $2, updated_at = now()
		WHERE id = $1 AND stock_quantity >= $2`, productID, qty)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s", domain.ErrInsufficientStock, productID)
	}
	return nil
}
