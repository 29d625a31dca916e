package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/access"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dto"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/repository"
	"github.com/AppHatchery-01/kirana-pos-easy/pkg/jwt"
)

// MinPasswordLength shortest accepted password.
const MinPasswordLength = 6

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// NewIdentity input for CreateIdentity.
type NewIdentity struct {
	Email          string
	Password       string
	FullName       string
	Phone          string
	EmailConfirmed bool
}

// AuthUseCase identities and sessions: sign up, sign in, session lookup,
// and the identity steps used by provisioning.
type AuthUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, roleRepo: roleRepo, jwtCfg: jwtCfg}
}

// SignUp registers an unconfirmed identity without roles.
func (uc *AuthUseCase) SignUp(ctx context.Context, in dto.SignUpRequest) (*dto.UserResponse, error) {
	user, err := uc.CreateIdentity(ctx, NewIdentity{
		Email:    in.Email,
		Password: in.Password,
		FullName: in.FullName,
		Phone:    in.Phone,
	})
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// CreateIdentity validates and stores a new identity with a bcrypt hash.
func (uc *AuthUseCase) CreateIdentity(ctx context.Context, in NewIdentity) (*entity.User, error) {
	email := strings.TrimSpace(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}
	if len(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, MinPasswordLength)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:             uuid.New().String(),
		Email:          email,
		PasswordHash:   string(hash),
		FullName:       name,
		Phone:          in.Phone,
		EmailConfirmed: in.EmailConfirmed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteIdentity removes an identity (provisioning compensation).
func (uc *AuthUseCase) DeleteIdentity(ctx context.Context, userID string) error {
	return uc.userRepo.Delete(ctx, userID)
}

// SignIn checks the password and issues a token carrying the primary role.
// Unknown email and wrong password both yield ErrUnauthorized.
func (uc *AuthUseCase) SignIn(ctx context.Context, in dto.SignInRequest) (*dto.SignInResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	session, err := uc.session(ctx, user)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, session.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.SignInResponse{Token: token, SessionResponse: *session}, nil
}

// Session returns the caller's identity and current roles.
func (uc *AuthUseCase) Session(ctx context.Context, caller access.Caller) (*dto.SessionResponse, error) {
	if err := access.RequireCaller(caller); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.session(ctx, user)
}

func (uc *AuthUseCase) session(ctx context.Context, user *entity.User) (*dto.SessionResponse, error) {
	roles, err := uc.roleRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []string{}
	}
	return &dto.SessionResponse{
		User:  ToUserResponse(user),
		Roles: roles,
		Role:  entity.PrimaryRole(roles),
	}, nil
}

// ToUserResponse maps an identity to its public view.
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		Phone:          u.Phone,
		EmailConfirmed: u.EmailConfirmed,
		CreatedAt:      u.CreatedAt,
	}
}
