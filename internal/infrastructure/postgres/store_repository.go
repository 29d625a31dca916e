package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

const storeColumns = `id, name, owner_id, COALESCE(phone, ''), COALESCE(address, ''), COALESCE(gst_number, ''),
	is_active, created_at, updated_at`

// StoreRepo StoreRepository on PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository builds the adapter over a pool or a tx.
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

func scanStore(row pgx.Row) (*entity.Store, error) {
	var s entity.Store
	if err := row.Scan(&s.ID, &s.Name, &s.OwnerID, &s.Phone, &s.Address, &s.GSTNumber,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts the store. A second store for the same owner is ErrDuplicate.
func (r *StoreRepo) Create(ctx context.Context, s *entity.Store) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stores (id, name, owner_id, phone, address, gst_number, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.Name, s.OwnerID, nullIfEmpty(s.Phone), nullIfEmpty(s.Address), nullIfEmpty(s.GSTNumber),
		s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: owner already has a store", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id)
}

func (r *StoreRepo) GetByOwner(ctx context.Context, ownerID string) (*entity.Store, error) {
	ownerID, ok := parseID(ownerID)
	if !ok {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+storeColumns+` FROM stores WHERE owner_id = $1`, ownerID)
}

func (r *StoreRepo) getOne(ctx context.Context, query string, arg string) (*entity.Store, error) {
	s, err := scanStore(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return s, nil
}

func (r *StoreRepo) List(ctx context.Context) ([]*entity.Store, error) {
	rows, err := r.q.Query(ctx, `SELECT `+storeColumns+` FROM stores ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *StoreRepo) SetActive(ctx context.Context, id string, active bool) error {
	id, ok := parseID(id)
	if !ok {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `UPDATE stores SET is_active = $2, updated_at = $3 WHERE id = $1`,
		id, active, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set store active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StoreRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stores WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	return nil
}
