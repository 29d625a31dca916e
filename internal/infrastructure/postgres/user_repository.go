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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, full_name, COALESCE(phone, ''), email_confirmed, created_at, updated_at`

// UserRepo UserRepository on PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository builds the adapter over a pool or a tx.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create inserts the identity. Emails are unique ignoring case.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, full_name, phone, email_confirmed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Email, u.PasswordHash, u.FullName, nullIfEmpty(u.Phone), u.EmailConfirmed, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

func (r *UserRepo) findOne(ctx context.Context, query, arg string) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone,
		&u.EmailConfirmed, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Delete removes the identity; its role rows go with it (ON DELETE CASCADE).
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo RoleRepository on PostgreSQL.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository builds the adapter over a pool or a tx.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// HasRole delegates to the has_role SQL function.
func (r *RoleRepo) HasRole(ctx context.Context, userID, role string) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, `SELECT has_role($1, $2)`, userID, role).Scan(&ok); err != nil {
		return false, fmt.Errorf("has_role: %w", err)
	}
	return ok, nil
}

func (r *RoleRepo) Assign(ctx context.Context, a *entity.RoleAssignment) error {
	_, err := r.q.Exec(ctx, `INSERT INTO user_roles (id, user_id, role) VALUES ($1, $2, $3)`, a.ID, a.UserID, a.Role)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: role %s already assigned", domain.ErrDuplicate, a.Role)
		}
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}

func (r *RoleRepo) ListByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`, userID)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
