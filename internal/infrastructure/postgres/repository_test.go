package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
)

// stubQuerier counts round trips and fails Exec with execErr.
type stubQuerier struct {
	calls   int
	execErr error
}

func (s *stubQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	s.calls++
	return pgconn.NewCommandTag("DELETE 0"), s.execErr
}

func (s *stubQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	s.calls++
	return nil, nil
}

func (s *stubQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	s.calls++
	return nil
}

func (s *stubQuerier) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults {
	s.calls++
	return nil
}

func TestParseID(t *testing.T) {
	id := uuid.New()

	got, ok := parseID(id.String())
	assert.True(t, ok)
	assert.Equal(t, id.String(), got)

	got, ok = parseID("{" + id.String() + "}")
	assert.True(t, ok)
	assert.Equal(t, id.String(), got)

	for _, bad := range []string{"", "abc", "store-1", "12345"} {
		_, ok := parseID(bad)
		assert.False(t, ok, bad)
	}
}

func TestRepositories_NonUUIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	q := &stubQuerier{}

	sale, err := NewSaleRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, sale)

	product, err := NewProductRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, product)

	store, err := NewStoreRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, store)

	user, err := NewUserRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, user)

	assert.ErrorIs(t, NewProductRepository(q).Update(ctx, &entity.Product{ID: "abc"}), domain.ErrNotFound)
	assert.ErrorIs(t, NewProductRepository(q).Delete(ctx, "abc"), domain.ErrNotFound)
	assert.ErrorIs(t, NewProductRepository(q).DecrementStock(ctx, "abc", 1), domain.ErrNotFound)
	assert.ErrorIs(t, NewStoreRepository(q).SetActive(ctx, "abc", false), domain.ErrNotFound)

	assert.Zero(t, q.calls, "no query reaches the database")
}

func TestProductDelete_WithSalesHistoryIsConflict(t *testing.T) {
	q := &stubQuerier{execErr: &pgconn.PgError{Code: "23503", ConstraintName: "sale_items_product_id_fkey"}}

	err := NewProductRepository(q).Delete(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "sales history")
	assert.Equal(t, 1, q.calls)
}
