package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/citypulse/report-system/internal/api/middleware"
	"github.com/citypulse/report-system/internal/core/domain"
)

// ctxPrincipal extracts the principal bound by the auth filter and performs a
// fast-fail check before any service call: the policy gate guarantees a
// principal is present on gated routes, so a nil here means a route was wired
// without its gate — reject rather than proceed anonymously.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	p := middleware.PrincipalFrom(c)
	if p == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return p, nil
}
