// Package provisioning creates a store owner account and its store in one
// privileged, compensated sequence.
package provisioning

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/auth"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dto"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/repository"
	"github.com/AppHatchery-01/kirana-pos-easy/pkg/gstin"
)

// ErrMissingFields one of storeName, ownerName, ownerEmail, ownerPassword is empty.
var ErrMissingFields = fmt.Errorf("%w: Missing required fields", domain.ErrInvalidInput)

// Outcomes reported to the Recorder.
const (
	OutcomeSuccess   = "success"
	OutcomeForbidden = "forbidden"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
)

// IdentityProvider creates and removes sign-in identities.
type IdentityProvider interface {
	CreateIdentity(ctx context.Context, in auth.NewIdentity) (*entity.User, error)
	DeleteIdentity(ctx context.Context, userID string) error
}

// Recorder receives provisioning outcomes.
type Recorder interface {
	Provisioned(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) Provisioned(string) {}

// ProvisioningUseCase admin-only onboarding of a store owner.
type ProvisioningUseCase struct {
	identities IdentityProvider
	stores     repository.StoreRepository
	roles      repository.RoleRepository
	rec        Recorder
	log        zerolog.Logger
}

// NewProvisioningUseCase builds the use case. rec may be nil.
func NewProvisioningUseCase(
	identities IdentityProvider,
	stores repository.StoreRepository,
	roles repository.RoleRepository,
	rec Recorder,
	log zerolog.Logger,
) *ProvisioningUseCase {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &ProvisioningUseCase{identities: identities, stores: stores, roles: roles, rec: rec, log: log}
}

// ProvisionStoreOwner checks the caller is an admin, then creates the owner
// identity, the store and the store_owner role. A failing step undoes the
// earlier ones.
func (uc *ProvisioningUseCase) ProvisionStoreOwner(ctx context.Context, callerID string, in dto.ProvisionStoreOwnerRequest) (*dto.ProvisionStoreOwnerResponse, error) {
	if err := uc.Authorize(ctx, callerID); err != nil {
		return nil, err
	}
	return uc.Provision(ctx, callerID, in)
}

// Authorize makes the single admin role lookup for a provisioning request.
// Callers that must decode the request first run it before touching the body.
func (uc *ProvisioningUseCase) Authorize(ctx context.Context, callerID string) error {
	isAdmin, err := uc.roles.HasRole(ctx, callerID, entity.RoleAdmin)
	if err != nil {
		uc.rec.Provisioned(OutcomeFailed)
		return fmt.Errorf("%w: %v", domain.ErrRoleCheckFailed, err)
	}
	if !isAdmin {
		uc.rec.Provisioned(OutcomeForbidden)
		return domain.ErrForbidden
	}
	return nil
}

// Provision validates the request and runs the compensated steps. The caller
// must already have passed Authorize.
func (uc *ProvisioningUseCase) Provision(ctx context.Context, callerID string, in dto.ProvisionStoreOwnerRequest) (*dto.ProvisionStoreOwnerResponse, error) {
	if err := validate(&in); err != nil {
		uc.rec.Provisioned(OutcomeInvalid)
		return nil, err
	}

	var (
		owner *entity.User
		store *entity.Store
	)
	steps := []step{
		{
			name: "create_identity",
			run: func(ctx context.Context) error {
				u, err := uc.identities.CreateIdentity(ctx, auth.NewIdentity{
					Email:          in.OwnerEmail,
					Password:       in.OwnerPassword,
					FullName:       in.OwnerName,
					Phone:          in.Phone,
					EmailConfirmed: true,
				})
				if err != nil {
					return err
				}
				owner = u
				return nil
			},
			compensate: func(ctx context.Context) error {
				return uc.identities.DeleteIdentity(ctx, owner.ID)
			},
		},
		{
			name: "create_store",
			run: func(ctx context.Context) error {
				now := time.Now().UTC()
				store = &entity.Store{
					ID:        uuid.New().String(),
					Name:      in.StoreName,
					OwnerID:   owner.ID,
					Phone:     in.Phone,
					Address:   in.Address,
					GSTNumber: in.GSTNumber,
					IsActive:  true,
					CreatedAt: now,
					UpdatedAt: now,
				}
				return uc.stores.Create(ctx, store)
			},
			compensate: func(ctx context.Context) error {
				return uc.stores.Delete(ctx, store.ID)
			},
		},
		{
			name: "assign_role",
			run: func(ctx context.Context) error {
				return uc.roles.Assign(ctx, &entity.RoleAssignment{
					ID:     uuid.New().String(),
					UserID: owner.ID,
					Role:   entity.RoleStoreOwner,
				})
			},
		},
	}
	if err := runSaga(ctx, uc.log, steps); err != nil {
		uc.rec.Provisioned(OutcomeFailed)
		return nil, err
	}

	uc.rec.Provisioned(OutcomeSuccess)
	uc.log.Info().
		Str("admin_id", callerID).
		Str("owner_id", owner.ID).
		Str("store_id", store.ID).
		Msg("store owner provisioned")
	return &dto.ProvisionStoreOwnerResponse{Success: true, OwnerID: owner.ID, StoreID: store.ID}, nil
}

func validate(in *dto.ProvisionStoreOwnerRequest) error {
	in.StoreName = strings.TrimSpace(in.StoreName)
	in.OwnerName = strings.TrimSpace(in.OwnerName)
	in.OwnerEmail = strings.TrimSpace(in.OwnerEmail)
	if in.StoreName == "" || in.OwnerName == "" || in.OwnerEmail == "" || in.OwnerPassword == "" {
		return ErrMissingFields
	}
	if len(in.OwnerPassword) < auth.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, auth.MinPasswordLength)
	}
	if in.GSTNumber != "" {
		normalized := gstin.Normalize(in.GSTNumber)
		if err := gstin.Validate(normalized); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		in.GSTNumber = normalized
	}
	return nil
}

// IsClientError reports errors that come from the request rather than from
// the role check.
func IsClientError(err error) bool {
	return err != nil && !errors.Is(err, domain.ErrRoleCheckFailed) && !errors.Is(err, domain.ErrForbidden)
}
