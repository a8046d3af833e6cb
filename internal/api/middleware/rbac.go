package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/citypulse/report-system/internal/api/metrics"
	"github.com/citypulse/report-system/internal/core/domain"
	"github.com/citypulse/report-system/internal/core/ports"
)

// Policy is the static table of per-operation role requirements. It is built
// once at startup and immutable thereafter; operations absent from the table
// are public.
type Policy struct {
	rules map[string]map[domain.Role]struct{}
	audit ports.AuditTrail
	log   zerolog.Logger
}

// NewPolicy builds a Policy from the operation → allowed-roles table. Denials
// are recorded on the audit trail when one is provided.
func NewPolicy(rules map[string][]domain.Role, audit ports.AuditTrail, log zerolog.Logger) *Policy {
	compiled := make(map[string]map[domain.Role]struct{}, len(rules))
	for op, roles := range rules {
		set := make(map[domain.Role]struct{}, len(roles))
		for _, r := range roles {
			set[r] = struct{}{}
		}
		compiled[op] = set
	}
	return &Policy{rules: compiled, audit: audit, log: log}
}

// Require returns the enforcement gate for the named operation. It runs after
// Authenticate: an absent principal and a role mismatch are both denied with
// the same outward error, but logged distinctly.
func (p *Policy) Require(operation string) echo.MiddlewareFunc {
	allowed, gated := p.rules[operation]

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !gated {
				return next(c)
			}

			principal := PrincipalFrom(c)
			if principal == nil {
				metrics.AccessDeniedTotal.WithLabelValues(operation).Inc()
				p.log.Warn().Str("operation", operation).Str("path", c.Path()).Msg("unauthenticated request to gated operation")
				p.recordDenied("", operation)
				return domain.ErrForbidden
			}

			if _, ok := allowed[principal.Role]; !ok {
				metrics.AccessDeniedTotal.WithLabelValues(operation).Inc()
				p.log.Warn().
					Str("operation", operation).
					Str("phone", principal.Phone).
					Str("role", string(principal.Role)).
					Msg("role not permitted for operation")
				p.recordDenied(principal.Phone, operation)
				return domain.ErrForbidden
			}

			return next(c)
		}
	}
}

func (p *Policy) recordDenied(phone, operation string) {
	if p.audit == nil {
		return
	}
	p.audit.Enqueue(domain.AuthEvent{
		Phone:  phone,
		Kind:   domain.AuthDenied,
		Detail: operation,
		At:     time.Now().UTC(),
	})
}
