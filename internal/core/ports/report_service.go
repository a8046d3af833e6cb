package ports

import (
	"context"
	"time"

	"github.com/citypulse/report-system/internal/core/domain"
)

// CreateReportInput carries the data for a new citizen report. The street is
// taken from the submitting account, never from the request.
type CreateReportInput struct {
	Description string
}

// ListReportsInput carries the optional filters for report listings.
// For citizens the street scope is forced to the principal's street.
type ListReportsInput struct {
	Status string
	From   time.Time
	To     time.Time
}

// ReportAnalytics aggregates report counts per status over a date range.
type ReportAnalytics struct {
	From   time.Time
	To     time.Time
	Counts map[domain.ReportStatus]int64
	Total  int64
}

// ReportService defines the report use cases. Operations that act on a single
// report owned by a citizen enforce the ownership predicate
// (report.UserID == principal.ID) and fail with domain.ErrForbidden otherwise.
type ReportService interface {
	Create(ctx context.Context, principal *domain.Principal, input CreateReportInput) (*domain.Report, error)
	ListForCitizen(ctx context.Context, principal *domain.Principal, input ListReportsInput) ([]domain.Report, error)
	ListForAdmin(ctx context.Context, input ListReportsInput) ([]domain.Report, error)
	UpdateStatus(ctx context.Context, id string, next domain.ReportStatus) (*domain.Report, error)
	UpdateContent(ctx context.Context, principal *domain.Principal, id, description string) (*domain.Report, error)
	Delete(ctx context.Context, id string) error
	DeleteOwn(ctx context.Context, principal *domain.Principal, id string) error
	Analytics(ctx context.Context, from, to time.Time) (*ReportAnalytics, error)
}
