package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/citypulse/report-system/internal/api/metrics"
	"github.com/citypulse/report-system/internal/core/domain"
	"github.com/citypulse/report-system/internal/core/ports"
)

// principalKey is the echo context key the authenticated principal is bound
// under. The binding lives and dies with the request context; concurrent
// requests never share it.
const principalKey = "auth.principal"

// Authenticate returns the per-request bearer-token filter.
//
// The filter never rejects a request: a missing header, a malformed header, a
// forged or expired token, or a token for a deleted account all leave the
// request unauthenticated and defer the deny decision to the policy gate.
// On success the resolved principal is bound into the request context. If a
// principal is already bound the filter is a no-op.
//
// Token rejections with an attributable subject are recorded on the audit
// trail (nil-safe: a nil trail disables auditing).
func Authenticate(codec ports.TokenCodec, resolver ports.IdentityResolver, audit ports.AuditTrail, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if PrincipalFrom(c) != nil {
				return next(c)
			}

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Debug().Str("path", c.Path()).Msg("malformed authorization header")
				return next(c)
			}
			token := strings.TrimSpace(parts[1])

			phone, err := codec.ParseSubject(token)
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues("rejected").Inc()
				log.Warn().Str("path", c.Path()).Msg("bearer token rejected")
				return next(c)
			}

			principal, err := resolver.LoadByPhone(c.Request().Context(), phone)
			if err != nil {
				// Structurally valid token for an account that no longer exists.
				metrics.TokenValidationsTotal.WithLabelValues("unknown_subject").Inc()
				log.Warn().Str("phone", phone).Msg("token subject has no account")
				recordRejected(audit, phone, "unknown subject")
				return next(c)
			}

			if !codec.IsValid(token, principal) {
				metrics.TokenValidationsTotal.WithLabelValues("expired_or_mismatched").Inc()
				log.Warn().Str("phone", phone).Msg("token failed validation")
				recordRejected(audit, phone, "expired or mismatched")
				return next(c)
			}

			metrics.TokenValidationsTotal.WithLabelValues("ok").Inc()
			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal bound by Authenticate, or nil when the
// request is unauthenticated.
func PrincipalFrom(c echo.Context) *domain.Principal {
	p, _ := c.Get(principalKey).(*domain.Principal)
	return p
}

// BindPrincipal binds a principal directly. Intended for tests.
func BindPrincipal(c echo.Context, p *domain.Principal) {
	c.Set(principalKey, p)
}

func recordRejected(audit ports.AuditTrail, phone, detail string) {
	if audit == nil {
		return
	}
	audit.Enqueue(domain.AuthEvent{
		Phone:  phone,
		Kind:   domain.AuthTokenRejected,
		Detail: detail,
		At:     time.Now().UTC(),
	})
}
