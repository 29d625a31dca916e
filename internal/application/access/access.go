// Package access decides what an authenticated caller may touch.
// Roles are always re-read from the database; the token role is only a hint.
package access

import (
	"context"
	"fmt"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/repository"
)

// Caller the authenticated identity behind a request, passed explicitly
// to every use case.
type Caller struct {
	UserID string
	Email  string
}

// Authenticated reports whether the caller carries an identity.
func (c Caller) Authenticated() bool { return c.UserID != "" }

// Guard resolves store-level permissions.
type Guard struct {
	roles  repository.RoleRepository
	stores repository.StoreRepository
}

// NewGuard builds the guard.
func NewGuard(roles repository.RoleRepository, stores repository.StoreRepository) *Guard {
	return &Guard{roles: roles, stores: stores}
}

// RequireCaller fails with ErrUnauthorized for an anonymous caller.
func RequireCaller(c Caller) error {
	if !c.Authenticated() {
		return domain.ErrUnauthorized
	}
	return nil
}

// IsAdmin reports whether the caller holds the admin role.
func (g *Guard) IsAdmin(ctx context.Context, c Caller) (bool, error) {
	ok, err := g.roles.HasRole(ctx, c.UserID, entity.RoleAdmin)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// RequireAdmin fails with ErrForbidden unless the caller is an admin.
func (g *Guard) RequireAdmin(ctx context.Context, c Caller) error {
	if err := RequireCaller(c); err != nil {
		return err
	}
	ok, err := g.IsAdmin(ctx, c)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}

// Store loads the store and checks the caller is an admin or its owner.
// Owners lose access while their store is deactivated.
func (g *Guard) Store(ctx context.Context, c Caller, storeID string) (*entity.Store, error) {
	if err := RequireCaller(c); err != nil {
		return nil, err
	}
	store, err := g.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: store %s", domain.ErrNotFound, storeID)
	}
	if store.OwnerID == c.UserID && store.IsActive {
		return store, nil
	}
	admin, err := g.IsAdmin(ctx, c)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, domain.ErrForbidden
	}
	return store, nil
}
