package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/access"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/auth"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dto"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/fakes"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
	"github.com/AppHatchery-01/kirana-pos-easy/pkg/jwt"
)

const secret = "test-secret"

func newAuth() (*auth.AuthUseCase, *fakes.Users, *fakes.Roles) {
	users, roles := fakes.NewUsers(), fakes.NewRoles()
	uc := auth.NewAuthUseCase(users, roles, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "kirana-pos"})
	return uc, users, roles
}

func TestSignUpAndSignIn(t *testing.T) {
	uc, _, roles := newAuth()
	ctx := context.Background()

	user, err := uc.SignUp(ctx, dto.SignUpRequest{Email: "ravi@example.com", Password: "secret1", FullName: "Ravi"})
	require.NoError(t, err)
	assert.False(t, user.EmailConfirmed)
	roles.Grant(user.ID, entity.RoleStoreOwner)

	out, err := uc.SignIn(ctx, dto.SignInRequest{Email: "RAVI@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleStoreOwner}, out.Roles)
	assert.Equal(t, entity.RoleStoreOwner, out.Role)

	id, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id.UserID)
	assert.Equal(t, entity.RoleStoreOwner, id.Role)
}

func TestSignUp_Validation(t *testing.T) {
	uc, _, _ := newAuth()
	ctx := context.Background()

	_, err := uc.SignUp(ctx, dto.SignUpRequest{Email: "not-an-email", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SignUp(ctx, dto.SignUpRequest{Email: "a@b.in", Password: "12345"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SignUp(ctx, dto.SignUpRequest{Email: "a@b.in", Password: "123456"})
	require.NoError(t, err)
	_, err = uc.SignUp(ctx, dto.SignUpRequest{Email: "A@B.in", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestSignIn_WrongPassword(t *testing.T) {
	uc, _, _ := newAuth()
	ctx := context.Background()
	_, err := uc.SignUp(ctx, dto.SignUpRequest{Email: "a@b.in", Password: "123456"})
	require.NoError(t, err)

	_, err = uc.SignIn(ctx, dto.SignInRequest{Email: "a@b.in", Password: "654321"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.SignIn(ctx, dto.SignInRequest{Email: "nobody@b.in", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSession(t *testing.T) {
	uc, _, _ := newAuth()
	ctx := context.Background()
	user, err := uc.SignUp(ctx, dto.SignUpRequest{Email: "a@b.in", Password: "123456"})
	require.NoError(t, err)

	s, err := uc.Session(ctx, access.Caller{UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, "a@b.in", s.User.Email)
	assert.Empty(t, s.Roles)
	assert.Equal(t, "", s.Role)

	_, err = uc.Session(ctx, access.Caller{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCreateAndDeleteIdentity(t *testing.T) {
	uc, users, _ := newAuth()
	ctx := context.Background()
	u, err := uc.CreateIdentity(ctx, auth.NewIdentity{Email: "owner@shop.in", Password: "secret1", FullName: "Owner", EmailConfirmed: true})
	require.NoError(t, err)
	assert.True(t, u.EmailConfirmed)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	require.NoError(t, uc.DeleteIdentity(ctx, u.ID))
	assert.Zero(t, users.Len())
}
