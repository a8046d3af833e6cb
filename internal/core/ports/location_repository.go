package ports

import (
	"context"

	"github.com/citypulse/report-system/internal/core/domain"
)

// LocationRepository exposes the read paths the auth and user layers need from
// the geographic hierarchy. Location CRUD lives outside this service.
type LocationRepository interface {
	FindStreetByID(ctx context.Context, id string) (*domain.Street, error)
	FindStreetsByDistrictID(ctx context.Context, districtID string) ([]domain.Street, error)
}
