package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/citypulse/report-system/internal/core/domain"
	"github.com/citypulse/report-system/internal/core/ports"
)

// AuthService implements login and the account write paths that share the
// password hasher.
type AuthService struct {
	accounts   ports.AccountRepository
	locations  ports.LocationRepository
	codec      ports.TokenCodec
	audit      ports.AuditTrail
	bcryptCost int
	logger     zerolog.Logger
}

func NewAuthService(accounts ports.AccountRepository, locations ports.LocationRepository, codec ports.TokenCodec, audit ports.AuditTrail, bcryptCost int, logger zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = 12
	}
	return &AuthService{
		accounts:   accounts,
		locations:  locations,
		codec:      codec,
		audit:      audit,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Login verifies the phone/password pair and issues a token. A missing account
// and a wrong password both surface as domain.ErrInvalidCredentials so the
// response never reveals whether the phone is registered. The distinction is
// kept server-side in logs and the audit trail only.
func (s *AuthService) Login(ctx context.Context, phone, password string) (*ports.LoginResult, error) {
	if phone == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.logger.Warn().Str("phone", phone).Msg("login for unknown phone")
			s.recordAuth(phone, domain.AuthLoginFailed, "unknown phone")
			return nil, domain.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Msg("account lookup failed")
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		s.logger.Warn().Str("phone", phone).Msg("password mismatch")
		s.recordAuth(phone, domain.AuthLoginFailed, "password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(account.Phone)
	if err != nil {
		s.logger.Error().Err(err).Msg("token issuance failed")
		return nil, domain.ErrInvalidCredentials
	}

	s.recordAuth(phone, domain.AuthLoginOK, "")
	s.logger.Info().Str("phone", phone).Str("role", string(account.Role)).Msg("login succeeded")

	return &ports.LoginResult{
		Token:    token,
		Role:     account.Role,
		Username: account.Username,
		Phone:    account.Phone,
	}, nil
}

// Register creates a new account. The street must exist, the password is
// hashed before persisting, and uniqueness collisions propagate as the
// field-specific conflict errors raised by the repository.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AccountResult, error) {
	if input.Username == "" || input.Phone == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if _, ok := domain.ParseRole(string(input.Role)); !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if _, err := s.locations.FindStreetByID(ctx, input.StreetID); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:     input.Username,
		Phone:        input.Phone,
		PasswordHash: string(hash),
		Role:         input.Role,
		StreetID:     input.StreetID,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("phone", created.Phone).Str("role", string(created.Role)).Msg("account registered")
	return accountResult(created), nil
}

// UpdateAccount rewrites an existing account. An empty password keeps the
// stored hash; a non-empty one is re-hashed.
func (s *AuthService) UpdateAccount(ctx context.Context, id string, input ports.RegisterInput) (*ports.AccountResult, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, ok := domain.ParseRole(string(input.Role)); !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if _, err := s.locations.FindStreetByID(ctx, input.StreetID); err != nil {
		return nil, err
	}

	account.Username = input.Username
	account.Phone = input.Phone
	account.Role = input.Role
	account.StreetID = input.StreetID

	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = string(hash)
	}

	updated, err := s.accounts.Update(ctx, account)
	if err != nil {
		return nil, err
	}
	return accountResult(updated), nil
}

func (s *AuthService) recordAuth(phone string, kind domain.AuthEventKind, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuthEvent{
		Phone:  phone,
		Kind:   kind,
		Detail: detail,
		At:     time.Now().UTC(),
	})
}

func accountResult(a *domain.Account) *ports.AccountResult {
	return &ports.AccountResult{
		ID:       a.ID,
		Username: a.Username,
		Phone:    a.Phone,
		Role:     a.Role,
		StreetID: a.StreetID,
	}
}
