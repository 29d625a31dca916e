package dto

import "time"

// SignUpRequest self-service registration; the identity gets no role.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
}

// SignInRequest email/password sign-in.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse public view of an identity.
type UserResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Phone          string    `json:"phone,omitempty"`
	EmailConfirmed bool      `json:"email_confirmed"`
	CreatedAt      time.Time `json:"created_at"`
}

// SessionResponse identity plus its roles.
type SessionResponse struct {
	User  UserResponse `json:"user"`
	Roles []string     `json:"roles"`
	Role  string       `json:"role"` // most privileged of Roles
}

// SignInResponse bearer token and session.
type SignInResponse struct {
	Token string `json:"token"`
	SessionResponse
}
