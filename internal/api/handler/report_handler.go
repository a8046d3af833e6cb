package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/citypulse/report-system/internal/api/metrics"
	"github.com/citypulse/report-system/internal/core/domain"
	"github.com/citypulse/report-system/internal/core/ports"
)

// ReportHandler handles citizen report submission and admin triage endpoints.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

type createReportRequest struct {
	Description string `json:"description" validate:"required,min=10"`
}

type updateReportRequest struct {
	Description string `json:"description" validate:"required,min=10"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress resolved rejected"`
}

type reportResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	StreetID    string `json:"street_id"`
	UserID      string `json:"user_id,omitempty"`
}

type analyticsResponse struct {
	From   string           `json:"from"`
	To     string           `json:"to"`
	Counts map[string]int64 `json:"counts"`
	Total  int64            `json:"total"`
}

// Create handles POST /api/reports. Citizens file a report on their own street.
//
// @Summary      Create a report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReportRequest  true  "Report details"
// @Success      201   {object}  reportResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/reports [post]
func (h *ReportHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	report, err := h.service.Create(c.Request().Context(), principal, ports.CreateReportInput{
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.ReportsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toReportResponse(report))
}

// ListCitizen handles GET /api/reports/citizen with optional status and date
// range query params (defaults: last 7 days, principal's street).
func (h *ReportHandler) ListCitizen(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	input, err := listInputFromQuery(c)
	if err != nil {
		return err
	}

	reports, err := h.service.ListForCitizen(c.Request().Context(), principal, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReportResponses(reports))
}

// ListAdmin handles GET /api/reports/admin across all streets.
func (h *ReportHandler) ListAdmin(c echo.Context) error {
	input, err := listInputFromQuery(c)
	if err != nil {
		return err
	}

	reports, err := h.service.ListForAdmin(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReportResponses(reports))
}

// UpdateStatus handles PUT /api/reports/:id/status. Admin triage.
func (h *ReportHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status, ok := domain.ParseReportStatus(req.Status)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	report, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), status)
	if err != nil {
		return err
	}

	metrics.ReportTransitionsTotal.WithLabelValues(string(status)).Inc()
	return c.JSON(http.StatusOK, toReportResponse(report))
}

// UpdateOwn handles PUT /api/reports/:id/user. Citizens edit their own
// pending reports.
func (h *ReportHandler) UpdateOwn(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	report, err := h.service.UpdateContent(c.Request().Context(), principal, c.Param("id"), req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReportResponse(report))
}

// Delete handles DELETE /api/reports/:id. Admin removal.
func (h *ReportHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteOwn handles DELETE /api/reports/:id/user. Citizens remove their own
// reports.
func (h *ReportHandler) DeleteOwn(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteOwn(c.Request().Context(), principal, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Analytics handles GET /api/reports/analytics with from/to query params.
func (h *ReportHandler) Analytics(c echo.Context) error {
	from, err := parseDateParam(c.QueryParam("from"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid from date")
	}
	to, err := parseDateParam(c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid to date")
	}

	analytics, err := h.service.Analytics(c.Request().Context(), from, to)
	if err != nil {
		return err
	}

	counts := make(map[string]int64, len(analytics.Counts))
	for status, n := range analytics.Counts {
		counts[string(status)] = n
	}

	return c.JSON(http.StatusOK, analyticsResponse{
		From:   analytics.From.Format(time.RFC3339),
		To:     analytics.To.Format(time.RFC3339),
		Counts: counts,
		Total:  analytics.Total,
	})
}

func listInputFromQuery(c echo.Context) (ports.ListReportsInput, error) {
	from, err := parseDateParam(c.QueryParam("from"))
	if err != nil {
		return ports.ListReportsInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid from date")
	}
	to, err := parseDateParam(c.QueryParam("to"))
	if err != nil {
		return ports.ListReportsInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid to date")
	}

	return ports.ListReportsInput{
		Status: c.QueryParam("status"),
		From:   from,
		To:     to,
	}, nil
}

// parseDateParam accepts an empty value (zero time) or a YYYY-MM-DD date.
func parseDateParam(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

func toReportResponse(r *domain.Report) reportResponse {
	return reportResponse{
		ID:          r.ID,
		Description: r.Description,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		StreetID:    r.StreetID,
		UserID:      r.UserID,
	}
}

func toReportResponses(reports []domain.Report) []reportResponse {
	out := make([]reportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, toReportResponse(&reports[i]))
	}
	return out
}
