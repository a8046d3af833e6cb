package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/citypulse/report-system/internal/core/domain"
	"github.com/citypulse/report-system/internal/core/ports"
	"github.com/citypulse/report-system/internal/core/service"
)

type memAccountRepo struct {
	byPhone map[string]*domain.Account
}

func (r *memAccountRepo) FindByPhone(_ context.Context, phone string) (*domain.Account, error) {
	if a, ok := r.byPhone[phone]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *memAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	for _, a := range r.byPhone {
		if a.ID == id {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *memAccountRepo) FindAll(context.Context) ([]domain.Account, error) { return nil, nil }
func (r *memAccountRepo) FindByStreetID(context.Context, string) ([]domain.Account, error) {
	return nil, nil
}
func (r *memAccountRepo) FindByStreetIDs(context.Context, []string) ([]domain.Account, error) {
	return nil, nil
}

func (r *memAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if _, ok := r.byPhone[account.Phone]; ok {
		return nil, domain.ErrPhoneTaken
	}
	created := *account
	created.ID = "acc_" + account.Phone
	r.byPhone[created.Phone] = &created
	clone := created
	return &clone, nil
}

func (r *memAccountRepo) Update(_ context.Context, account *domain.Account) (*domain.Account, error) {
	clone := *account
	r.byPhone[account.Phone] = &clone
	out := clone
	return &out, nil
}

func (r *memAccountRepo) Delete(_ context.Context, id string) error {
	for phone, a := range r.byPhone {
		if a.ID == id {
			delete(r.byPhone, phone)
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

type memLocationRepo struct{}

func (memLocationRepo) FindStreetByID(_ context.Context, id string) (*domain.Street, error) {
	return &domain.Street{ID: id, Name: "Main Street"}, nil
}

func (memLocationRepo) FindStreetsByDistrictID(context.Context, string) ([]domain.Street, error) {
	return nil, nil
}

// TestAuthFlow_EndToEnd walks the full stack: register an admin, log in,
// reach an admin-gated route with the issued token, and get denied when the
// token is tampered with.
func TestAuthFlow_EndToEnd(t *testing.T) {
	accounts := &memAccountRepo{byPhone: make(map[string]*domain.Account)}
	codec := service.NewJWTCodec("flow-test-secret", 0)
	auth := service.NewAuthService(accounts, memLocationRepo{}, codec, nil, bcrypt.MinCost, zerolog.Nop())
	resolver := service.NewIdentityService(accounts)

	policy := NewPolicy(map[string][]domain.Role{
		"users.manage": {domain.RoleAdmin},
	}, nil, zerolog.Nop())

	e := echo.New()

	if _, err := auth.Register(context.Background(), ports.RegisterInput{
		Username: "dispatcher",
		Phone:    "0555123456",
		Password: "secret1",
		Role:     domain.RoleAdmin,
		StreetID: "st_1",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := auth.Login(context.Background(), "0555123456", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token from login")
	}
	if result.Role != domain.RoleAdmin {
		t.Fatalf("expected ADMIN role, got %q", result.Role)
	}

	call := func(header string) error {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		if header != "" {
			req.Header.Set(echo.HeaderAuthorization, header)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/users")

		handler := Authenticate(codec, resolver, nil, zerolog.Nop())(
			policy.Require("users.manage")(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			}))
		return handler(c)
	}

	if err := call("Bearer " + result.Token); err != nil {
		t.Fatalf("expected valid token to pass the gate, got %v", err)
	}

	if err := call("Bearer " + result.Token + "x"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected tampered token to be denied, got %v", err)
	}

	if err := call(""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected anonymous request to be denied, got %v", err)
	}

	if _, err := auth.Login(context.Background(), "0555123456", "wrong-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
