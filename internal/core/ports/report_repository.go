package ports

import (
	"context"
	"time"

	"github.com/citypulse/report-system/internal/core/domain"
)

// ReportFilter narrows report queries. Zero values mean "no constraint";
// StreetID is always set for citizen queries.
type ReportFilter struct {
	StreetID string
	Status   domain.ReportStatus
	From     time.Time
	To       time.Time
}

// ReportRepository defines the interface for report persistence.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) (*domain.Report, error)
	FindByID(ctx context.Context, id string) (*domain.Report, error)
	Find(ctx context.Context, filter ReportFilter) ([]domain.Report, error)
	Update(ctx context.Context, report *domain.Report) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, from, to time.Time) (map[domain.ReportStatus]int64, error)
}
