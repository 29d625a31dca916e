package entity

import "time"

// Roles an identity can hold (user_roles.role).
const (
	RoleAdmin      = "admin"
	RoleStoreOwner = "store_owner"
	RoleCashier    = "cashier"
)

// ValidRole reports whether r is a known role.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleStoreOwner, RoleCashier:
		return true
	}
	return false
}

// PrimaryRole picks the most privileged role of a set (admin > store_owner > cashier).
func PrimaryRole(roles []string) string {
	best := ""
	rank := map[string]int{RoleCashier: 1, RoleStoreOwner: 2, RoleAdmin: 3}
	for _, r := range roles {
		if rank[r] > rank[best] {
			best = r
		}
	}
	return best
}

// User an identity that can sign in.
type User struct {
	ID             string
	Email          string
	PasswordHash   string // bcrypt
	FullName       string
	Phone          string
	EmailConfirmed bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RoleAssignment binds a user to a role.
type RoleAssignment struct {
	ID     string
	UserID string
	Role   string
}
