package service

import (
	"context"

	"github.com/citypulse/report-system/internal/core/domain"
	"github.com/citypulse/report-system/internal/core/ports"
)

// UserService implements the admin-facing account read and delete paths.
type UserService struct {
	accounts  ports.AccountRepository
	locations ports.LocationRepository
}

func NewUserService(accounts ports.AccountRepository, locations ports.LocationRepository) *UserService {
	return &UserService{accounts: accounts, locations: locations}
}

func (s *UserService) GetAll(ctx context.Context) ([]ports.AccountResult, error) {
	accounts, err := s.accounts.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return accountResults(accounts), nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*ports.AccountResult, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return accountResult(account), nil
}

func (s *UserService) GetByStreet(ctx context.Context, streetID string) ([]ports.AccountResult, error) {
	accounts, err := s.accounts.FindByStreetID(ctx, streetID)
	if err != nil {
		return nil, err
	}
	return accountResults(accounts), nil
}

// GetByDistrict resolves the district's streets first, then collects the
// accounts living on any of them.
func (s *UserService) GetByDistrict(ctx context.Context, districtID string) ([]ports.AccountResult, error) {
	streets, err := s.locations.FindStreetsByDistrictID(ctx, districtID)
	if err != nil {
		return nil, err
	}
	if len(streets) == 0 {
		return []ports.AccountResult{}, nil
	}

	ids := make([]string, 0, len(streets))
	for _, st := range streets {
		ids = append(ids, st.ID)
	}

	accounts, err := s.accounts.FindByStreetIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return accountResults(accounts), nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.accounts.FindByID(ctx, id); err != nil {
		return err
	}
	return s.accounts.Delete(ctx, id)
}

func accountResults(accounts []domain.Account) []ports.AccountResult {
	out := make([]ports.AccountResult, 0, len(accounts))
	for i := range accounts {
		out = append(out, *accountResult(&accounts[i]))
	}
	return out
}
