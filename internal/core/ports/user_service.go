package ports

import "context"

// UserService defines the admin-facing account read and delete paths.
// Creation and updates go through AuthService, which owns the password hasher.
type UserService interface {
	GetAll(ctx context.Context) ([]AccountResult, error)
	GetByID(ctx context.Context, id string) (*AccountResult, error)
	GetByStreet(ctx context.Context, streetID string) ([]AccountResult, error)
	GetByDistrict(ctx context.Context, districtID string) ([]AccountResult, error)
	Delete(ctx context.Context, id string) error
}
