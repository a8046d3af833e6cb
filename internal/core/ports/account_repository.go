package ports

import (
	"context"

	"github.com/citypulse/report-system/internal/core/domain"
)

// AccountRepository defines the interface for account persistence.
// Create and Update surface uniqueness collisions as domain.ErrPhoneTaken or
// domain.ErrUsernameTaken depending on the collided field.
type AccountRepository interface {
	FindByPhone(ctx context.Context, phone string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindAll(ctx context.Context) ([]domain.Account, error)
	FindByStreetID(ctx context.Context, streetID string) ([]domain.Account, error)
	FindByStreetIDs(ctx context.Context, streetIDs []string) ([]domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
}
