package service

import (
	"context"

	"github.com/citypulse/report-system/internal/core/domain"
	"github.com/citypulse/report-system/internal/core/ports"
)

// IdentityService resolves a phone number to a fresh Principal. It is a pure
// read over the account store; nothing is cached, so a deleted account stops
// authenticating immediately even if its token is still unexpired.
type IdentityService struct {
	accounts ports.AccountRepository
}

func NewIdentityService(accounts ports.AccountRepository) *IdentityService {
	return &IdentityService{accounts: accounts}
}

// LoadByPhone returns the principal for the account with the given phone, or
// domain.ErrAccountNotFound when no such account exists.
func (s *IdentityService) LoadByPhone(ctx context.Context, phone string) (*domain.Principal, error) {
	account, err := s.accounts.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	return domain.NewPrincipal(account), nil
}
