// Package store exposes store administration: listing, the owner's own
// store and activation toggles. Stores are created by provisioning only.
package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/access"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dto"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/repository"
)

// StoreUseCase store queries and admin toggles.
type StoreUseCase struct {
	stores repository.StoreRepository
	guard  *access.Guard
	log    zerolog.Logger
}

// NewStoreUseCase builds the use case.
func NewStoreUseCase(stores repository.StoreRepository, guard *access.Guard, log zerolog.Logger) *StoreUseCase {
	return &StoreUseCase{stores: stores, guard: guard, log: log}
}

// List returns every store. Admin only.
func (uc *StoreUseCase) List(ctx context.Context, caller access.Caller) ([]dto.StoreResponse, error) {
	if err := uc.guard.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	list, err := uc.stores.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	out := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ToStoreResponse(s))
	}
	return out, nil
}

// Mine returns the store owned by the caller.
func (uc *StoreUseCase) Mine(ctx context.Context, caller access.Caller) (*dto.StoreResponse, error) {
	if err := access.RequireCaller(caller); err != nil {
		return nil, err
	}
	s, err := uc.stores.GetByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("get store by owner: %w", err)
	}
	if s == nil {
		return nil, fmt.Errorf("%w: no store for this account", domain.ErrNotFound)
	}
	out := ToStoreResponse(s)
	return &out, nil
}

// Get returns a store the caller may access.
func (uc *StoreUseCase) Get(ctx context.Context, caller access.Caller, storeID string) (*dto.StoreResponse, error) {
	s, err := uc.guard.Store(ctx, caller, storeID)
	if err != nil {
		return nil, err
	}
	out := ToStoreResponse(s)
	return &out, nil
}

// SetActive activates or deactivates a store. Admin only.
func (uc *StoreUseCase) SetActive(ctx context.Context, caller access.Caller, storeID string, active bool) (*dto.StoreResponse, error) {
	if err := uc.guard.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	s, err := uc.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	if s == nil {
		return nil, fmt.Errorf("%w: store %s", domain.ErrNotFound, storeID)
	}
	if s.IsActive != active {
		if err := uc.stores.SetActive(ctx, storeID, active); err != nil {
			return nil, fmt.Errorf("set store active: %w", err)
		}
		s.IsActive = active
		uc.log.Info().
			Str("store_id", storeID).
			Str("admin_id", caller.UserID).
			Bool("active", active).
			Msg("store activation changed")
	}
	out := ToStoreResponse(s)
	return &out, nil
}

// ToStoreResponse maps the entity to its public view.
func ToStoreResponse(s *entity.Store) dto.StoreResponse {
	return dto.StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		OwnerID:   s.OwnerID,
		Phone:     s.Phone,
		Address:   s.Address,
		GSTNumber: s.GSTNumber,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}
