package repository

import (
	"context"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
)

// UserRepository persistence port for identities.
// Get* return (nil, nil) when the user does not exist.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}

// RoleRepository persistence port for role assignments.
type RoleRepository interface {
	// HasRole evaluates the has_role(user_id, role) predicate in the database.
	HasRole(ctx context.Context, userID, role string) (bool, error)
	Assign(ctx context.Context, assignment *entity.RoleAssignment) error
	ListByUser(ctx context.Context, userID string) ([]string, error)
}
