package service

import (
	"context"
	"errors"
	"testing"

	"github.com/citypulse/report-system/internal/core/domain"
)

func TestIdentityService_LoadByPhone(t *testing.T) {
	repo := newStubAccountRepo()
	repo.byPhone["0555123456"] = &domain.Account{
		ID:       "acc_1",
		Username: "alice",
		Phone:    "0555123456",
		Role:     domain.RoleAdmin,
	}

	svc := NewIdentityService(repo)

	principal, err := svc.LoadByPhone(context.Background(), "0555123456")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if principal.ID != "acc_1" || principal.Phone != "0555123456" {
		t.Fatalf("unexpected principal %+v", principal)
	}
	if principal.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role %q", principal.Role)
	}
	if len(principal.Authorities) != 1 || principal.Authorities[0] != "ROLE_ADMIN" {
		t.Fatalf("unexpected authorities %v", principal.Authorities)
	}
}

func TestIdentityService_UnknownPhone(t *testing.T) {
	svc := NewIdentityService(newStubAccountRepo())

	if _, err := svc.LoadByPhone(context.Background(), "0999999999"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestIdentityService_FreshPrincipalPerCall(t *testing.T) {
	repo := newStubAccountRepo()
	repo.byPhone["0555123456"] = &domain.Account{ID: "acc_1", Phone: "0555123456", Role: domain.RoleCitizen}
	svc := NewIdentityService(repo)

	first, err := svc.LoadByPhone(context.Background(), "0555123456")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// A deleted account stops resolving immediately: nothing is cached.
	delete(repo.byPhone, "0555123456")
	if _, err := svc.LoadByPhone(context.Background(), "0555123456"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound after delete, got %v", err)
	}
	if first == nil {
		t.Fatalf("first principal should remain usable")
	}
}
