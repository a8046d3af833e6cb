package ports

import (
	"context"

	"github.com/citypulse/report-system/internal/core/domain"
)

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token    string
	Role     domain.Role
	Username string
	Phone    string
}

// RegisterInput carries the fields needed to create or update an account.
type RegisterInput struct {
	Username string
	Phone    string
	Password string
	Role     domain.Role
	StreetID string
}

// AccountResult is the outward account view (no password hash).
type AccountResult struct {
	ID       string
	Username string
	Phone    string
	Role     domain.Role
	StreetID string
}

// AuthService orchestrates credential verification, token issuance and the
// write paths that share the password hasher.
type AuthService interface {
	Login(ctx context.Context, phone, password string) (*LoginResult, error)
	Register(ctx context.Context, input RegisterInput) (*AccountResult, error)
	UpdateAccount(ctx context.Context, id string, input RegisterInput) (*AccountResult, error)
}
