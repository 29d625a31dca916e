package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/auth"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/repository"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/infrastructure/postgres"
)

// AdminResult outcome of create-admin.
type AdminResult struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Created bool   `json:"created"` // false when an existing identity was promoted
}

type identityCreator interface {
	CreateIdentity(ctx context.Context, in auth.NewIdentity) (*entity.User, error)
}

// bootstrapAdmin creates a confirmed identity and grants it the admin role.
// An existing identity with the same email is promoted instead.
func bootstrapAdmin(ctx context.Context, identities identityCreator, users repository.UserRepository, roles repository.RoleRepository, in auth.NewIdentity) (*AdminResult, error) {
	in.EmailConfirmed = true
	res := &AdminResult{Email: in.Email, Created: true}

	u, err := identities.CreateIdentity(ctx, in)
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		u, err = users.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, fmt.Errorf("look up existing identity: %w", err)
		}
		if u == nil {
			return nil, domain.ErrUserNotFound
		}
		res.Created = false
	case err != nil:
		return nil, err
	}
	res.UserID = u.ID

	has, err := roles.HasRole(ctx, u.ID, entity.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("check admin role: %w", err)
	}
	if !has {
		if err := roles.Assign(ctx, &entity.RoleAssignment{ID: uuid.New().String(), UserID: u.ID, Role: entity.RoleAdmin}); err != nil {
			return nil, fmt.Errorf("assign admin role: %w", err)
		}
	}
	return res, nil
}

// NewCreateAdminCommand creates the create-admin command.
func NewCreateAdminCommand(rootOpts *RootOptions) *cobra.Command {
	var in auth.NewIdentity

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create the first admin identity",
		Long: `Create a confirmed identity holding the admin role.

Store owners can only be provisioned by an admin, so a fresh installation
needs one created out of band. An existing identity with the same email is
promoted to admin.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, log, err := connect(ctx, rootOpts)
			if err != nil {
				return err
			}
			defer pool.Close()

			users := postgres.NewUserRepository(pool)
			roles := postgres.NewRoleRepository(pool)
			identities := auth.NewAuthUseCase(users, roles, auth.JWTConfig{})

			res, err := bootstrapAdmin(ctx, identities, users, roles, in)
			if err != nil {
				return err
			}
			log.Info().Str("user_id", res.UserID).Bool("created", res.Created).Msg("admin ready")
			return printAdmin(cmd, rootOpts, res)
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "admin email (required)")
	cmd.Flags().StringVar(&in.Password, "password", "", "admin password (required)")
	cmd.Flags().StringVar(&in.FullName, "name", "Administrator", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func printAdmin(cmd *cobra.Command, opts *RootOptions, res *AdminResult) error {
	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		return json.NewEncoder(out).Encode(res)
	}
	verb := "created"
	if !res.Created {
		verb = "promoted"
	}
	_, err := fmt.Fprintf(out, "admin %s: %s (%s)\n", verb, res.Email, res.UserID)
	return err
}
