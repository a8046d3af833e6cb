package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/citypulse/report-system/internal/core/domain"
)

func newTestPolicy() *Policy {
	return NewPolicy(map[string][]domain.Role{
		"users.manage":   {domain.RoleAdmin},
		"reports.create": {domain.RoleCitizen},
		"analytics.read": {domain.RoleCitizen, domain.RoleAdmin},
	}, nil, zerolog.Nop())
}

func runGated(policy *Policy, operation string, principal *domain.Principal) error {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		BindPrincipal(c, principal)
	}

	handler := policy.Require(operation)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c)
}

func TestPolicy_AllowsMatchingRole(t *testing.T) {
	policy := newTestPolicy()
	admin := &domain.Principal{ID: "acc_1", Phone: "0555123456", Role: domain.RoleAdmin}

	if err := runGated(policy, "users.manage", admin); err != nil {
		t.Fatalf("expected admin to pass users.manage, got %v", err)
	}
}

func TestPolicy_DeniesUnauthenticated(t *testing.T) {
	policy := newTestPolicy()

	err := runGated(policy, "users.manage", nil)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPolicy_DeniesWrongRole(t *testing.T) {
	policy := newTestPolicy()
	citizen := &domain.Principal{ID: "acc_2", Phone: "0555123457", Role: domain.RoleCitizen}

	err := runGated(policy, "users.manage", citizen)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPolicy_SharedOperationAllowsBothRoles(t *testing.T) {
	policy := newTestPolicy()

	for _, role := range []domain.Role{domain.RoleCitizen, domain.RoleAdmin} {
		p := &domain.Principal{ID: "acc_3", Phone: "0555123458", Role: role}
		if err := runGated(policy, "analytics.read", p); err != nil {
			t.Fatalf("expected %s to pass analytics.read, got %v", role, err)
		}
	}
}

func TestPolicy_UngatedOperationIsPublic(t *testing.T) {
	policy := newTestPolicy()

	if err := runGated(policy, "auth.login", nil); err != nil {
		t.Fatalf("expected ungated operation to pass, got %v", err)
	}
}
