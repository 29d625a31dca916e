package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/auth"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/fakes"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
)

func TestBootstrapAdmin_CreatesConfirmedAdmin(t *testing.T) {
	users, roles := fakes.NewUsers(), fakes.NewRoles()
	identities := auth.NewAuthUseCase(users, roles, auth.JWTConfig{})
	ctx := context.Background()

	res, err := bootstrapAdmin(ctx, identities, users, roles, auth.NewIdentity{Email: "root@example.com", Password: "secret123", FullName: "Root"})
	require.NoError(t, err)
	assert.True(t, res.Created)

	u, err := users.GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.True(t, u.EmailConfirmed)
	assert.Equal(t, res.UserID, u.ID)

	ok, err := roles.HasRole(ctx, u.ID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBootstrapAdmin_PromotesExistingIdentity(t *testing.T) {
	users, roles := fakes.NewUsers(), fakes.NewRoles()
	identities := auth.NewAuthUseCase(users, roles, auth.JWTConfig{})
	ctx := context.Background()

	existing, err := identities.CreateIdentity(ctx, auth.NewIdentity{Email: "root@example.com", Password: "secret123"})
	require.NoError(t, err)

	res, err := bootstrapAdmin(ctx, identities, users, roles, auth.NewIdentity{Email: "root@example.com", Password: "other-pass"})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, existing.ID, res.UserID)
	assert.Equal(t, 1, users.Len())

	// running it again is a no-op
	_, err = bootstrapAdmin(ctx, identities, users, roles, auth.NewIdentity{Email: "root@example.com", Password: "other-pass"})
	require.NoError(t, err)
	assert.Equal(t, 1, roles.Count())
}

func TestBootstrapAdmin_InvalidInput(t *testing.T) {
	users, roles := fakes.NewUsers(), fakes.NewRoles()
	identities := auth.NewAuthUseCase(users, roles, auth.JWTConfig{})

	_, err := bootstrapAdmin(context.Background(), identities, users, roles, auth.NewIdentity{Email: "not-an-email", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, 0, roles.Count())
}
