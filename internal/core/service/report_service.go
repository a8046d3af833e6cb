package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/citypulse/report-system/internal/core/domain"
	"github.com/citypulse/report-system/internal/core/ports"
)

// defaultListWindow is applied when a listing carries no explicit date range.
const defaultListWindow = 7 * 24 * time.Hour

// ReportService implements citizen submission and admin triage of reports.
type ReportService struct {
	reports  ports.ReportRepository
	accounts ports.AccountRepository
	logger   zerolog.Logger
}

func NewReportService(reports ports.ReportRepository, accounts ports.AccountRepository, logger zerolog.Logger) *ReportService {
	return &ReportService{reports: reports, accounts: accounts, logger: logger}
}

// Create files a new report on the submitting citizen's own street.
func (s *ReportService) Create(ctx context.Context, principal *domain.Principal, input ports.CreateReportInput) (*domain.Report, error) {
	report := &domain.Report{
		Description: input.Description,
		Status:      domain.ReportPending,
		CreatedAt:   time.Now().UTC(),
		UserID:      principal.ID,
	}

	// The street scope comes from the account, never from the request.
	street, err := s.streetOf(ctx, principal)
	if err != nil {
		return nil, err
	}
	report.StreetID = street

	created, err := s.reports.Create(ctx, report)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create report")
		return nil, err
	}

	s.logger.Info().Str("report_id", created.ID).Str("street_id", created.StreetID).Msg("report created")
	return created, nil
}

// ListForCitizen returns the reports on the citizen's street, optionally
// filtered by status, defaulting to the last seven days.
func (s *ReportService) ListForCitizen(ctx context.Context, principal *domain.Principal, input ports.ListReportsInput) ([]domain.Report, error) {
	street, err := s.streetOf(ctx, principal)
	if err != nil {
		return nil, err
	}

	filter, err := buildFilter(input)
	if err != nil {
		return nil, err
	}
	filter.StreetID = street

	return s.reports.Find(ctx, filter)
}

// ListForAdmin returns reports across all streets with the same filters.
func (s *ReportService) ListForAdmin(ctx context.Context, input ports.ListReportsInput) ([]domain.Report, error) {
	filter, err := buildFilter(input)
	if err != nil {
		return nil, err
	}
	return s.reports.Find(ctx, filter)
}

// UpdateStatus applies a triage transition, validated against the status
// state machine.
func (s *ReportService) UpdateStatus(ctx context.Context, id string, next domain.ReportStatus) (*domain.Report, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !report.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}

	report.Status = next
	if err := s.reports.Update(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info().Str("report_id", id).Str("status", string(next)).Msg("report status updated")
	return report, nil
}

// UpdateContent lets the submitting citizen edit the description of a pending
// report. Editing someone else's report fails with ErrForbidden.
func (s *ReportService) UpdateContent(ctx context.Context, principal *domain.Principal, id, description string) (*domain.Report, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !report.OwnedBy(principal) {
		return nil, domain.ErrForbidden
	}
	if report.Status != domain.ReportPending {
		return nil, domain.ErrInvalidTransition
	}

	report.Description = description
	if err := s.reports.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Delete removes any report. Admin triage path.
func (s *ReportService) Delete(ctx context.Context, id string) error {
	if _, err := s.reports.FindByID(ctx, id); err != nil {
		return err
	}
	return s.reports.Delete(ctx, id)
}

// DeleteOwn removes a report submitted by the calling citizen.
func (s *ReportService) DeleteOwn(ctx context.Context, principal *domain.Principal, id string) error {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !report.OwnedBy(principal) {
		return domain.ErrForbidden
	}
	return s.reports.Delete(ctx, id)
}

// Analytics aggregates report counts per status over the given range.
func (s *ReportService) Analytics(ctx context.Context, from, to time.Time) (*ports.ReportAnalytics, error) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.Add(-defaultListWindow)
	}

	counts, err := s.reports.CountByStatus(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	return &ports.ReportAnalytics{From: from, To: to, Counts: counts, Total: total}, nil
}

// streetOf resolves the principal's street scope from the account store.
// The principal projection deliberately carries no street, so citizen report
// paths re-read the account on every call.
func (s *ReportService) streetOf(ctx context.Context, principal *domain.Principal) (string, error) {
	if principal == nil {
		return "", domain.ErrForbidden
	}
	account, err := s.accounts.FindByID(ctx, principal.ID)
	if err != nil {
		return "", err
	}
	if account.StreetID == "" {
		return "", domain.ErrStreetNotFound
	}
	return account.StreetID, nil
}

func buildFilter(input ports.ListReportsInput) (ports.ReportFilter, error) {
	filter := ports.ReportFilter{From: input.From, To: input.To}

	if filter.To.IsZero() {
		filter.To = time.Now().UTC()
	}
	if filter.From.IsZero() {
		filter.From = filter.To.Add(-defaultListWindow)
	}

	if input.Status != "" {
		status, ok := domain.ParseReportStatus(input.Status)
		if !ok {
			return ports.ReportFilter{}, domain.ErrInvalidTransition
		}
		filter.Status = status
	}

	return filter, nil
}
