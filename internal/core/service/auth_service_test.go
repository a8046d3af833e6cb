package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/citypulse/report-system/internal/core/domain"
	"github.com/citypulse/report-system/internal/core/ports"
)

type stubAccountRepo struct {
	byPhone map[string]*domain.Account
	nextID  int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byPhone: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) FindByPhone(_ context.Context, phone string) (*domain.Account, error) {
	if a, ok := r.byPhone[phone]; ok {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	for _, a := range r.byPhone {
		if a.ID == id {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindAll(_ context.Context) ([]domain.Account, error) {
	out := make([]domain.Account, 0, len(r.byPhone))
	for _, a := range r.byPhone {
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubAccountRepo) FindByStreetID(_ context.Context, streetID string) ([]domain.Account, error) {
	var out []domain.Account
	for _, a := range r.byPhone {
		if a.StreetID == streetID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAccountRepo) FindByStreetIDs(ctx context.Context, streetIDs []string) ([]domain.Account, error) {
	var out []domain.Account
	for _, id := range streetIDs {
		accounts, _ := r.FindByStreetID(ctx, id)
		out = append(out, accounts...)
	}
	return out, nil
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	for _, a := range r.byPhone {
		if a.Username == account.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	if _, ok := r.byPhone[account.Phone]; ok {
		return nil, domain.ErrPhoneTaken
	}
	created := cloneAccount(account)
	r.nextID++
	created.ID = fmt.Sprintf("acc_%d", r.nextID)
	r.byPhone[created.Phone] = cloneAccount(created)
	return created, nil
}

func (r *stubAccountRepo) Update(_ context.Context, account *domain.Account) (*domain.Account, error) {
	for phone, a := range r.byPhone {
		if a.ID == account.ID {
			delete(r.byPhone, phone)
			r.byPhone[account.Phone] = cloneAccount(account)
			return cloneAccount(account), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) error {
	for phone, a := range r.byPhone {
		if a.ID == id {
			delete(r.byPhone, phone)
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

type stubLocationRepo struct {
	streets map[string]*domain.Street
}

func newStubLocationRepo(ids ...string) *stubLocationRepo {
	streets := make(map[string]*domain.Street, len(ids))
	for _, id := range ids {
		streets[id] = &domain.Street{ID: id, Name: "street " + id, DistrictID: "d1"}
	}
	return &stubLocationRepo{streets: streets}
}

func (r *stubLocationRepo) FindStreetByID(_ context.Context, id string) (*domain.Street, error) {
	if s, ok := r.streets[id]; ok {
		return s, nil
	}
	return nil, domain.ErrStreetNotFound
}

func (r *stubLocationRepo) FindStreetsByDistrictID(_ context.Context, districtID string) ([]domain.Street, error) {
	var out []domain.Street
	for _, s := range r.streets {
		if s.DistrictID == districtID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func newTestAuthService(repo *stubAccountRepo) *AuthService {
	codec := NewJWTCodec("secret", time.Hour)
	return NewAuthService(repo, newStubLocationRepo("st_1"), codec, nil, bcrypt.MinCost, zerolog.Nop())
}

func registerTestAccount(t *testing.T, svc *AuthService, phone, password string, role domain.Role) *ports.AccountResult {
	t.Helper()
	created, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "user-" + phone,
		Phone:    phone,
		Password: password,
		Role:     role,
		StreetID: "st_1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return created
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo)
	registerTestAccount(t, svc, "0555123456", "secret1", domain.RoleAdmin)

	result, err := svc.Login(context.Background(), "0555123456", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}
	if result.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role %q", result.Role)
	}
	if result.Phone != "0555123456" {
		t.Fatalf("unexpected phone %q", result.Phone)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo)
	registerTestAccount(t, svc, "0555123456", "secret1", domain.RoleCitizen)

	_, wrongPassword := svc.Login(context.Background(), "0555123456", "not-it")
	_, unknownPhone := svc.Login(context.Background(), "0999999999", "secret1")

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownPhone, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown phone: expected ErrInvalidCredentials, got %v", unknownPhone)
	}
	if wrongPassword.Error() != unknownPhone.Error() {
		t.Fatalf("failure modes must be externally identical: %q vs %q", wrongPassword, unknownPhone)
	}
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo)
	registerTestAccount(t, svc, "0555123456", "secret1", domain.RoleCitizen)

	stored := repo.byPhone["0555123456"]
	if stored.PasswordHash == "secret1" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_UnknownStreet(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo())

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "bob",
		Phone:    "0555000000",
		Password: "secret1",
		Role:     domain.RoleCitizen,
		StreetID: "nope",
	})
	if !errors.Is(err, domain.ErrStreetNotFound) {
		t.Fatalf("expected ErrStreetNotFound, got %v", err)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo())

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "bob",
		Phone:    "0555000000",
		Password: "secret1",
		Role:     domain.Role("SUPERUSER"),
		StreetID: "st_1",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_DuplicatePhone(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo)
	registerTestAccount(t, svc, "0555123456", "secret1", domain.RoleCitizen)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "someone-else",
		Phone:    "0555123456",
		Password: "secret2",
		Role:     domain.RoleCitizen,
		StreetID: "st_1",
	})
	if !errors.Is(err, domain.ErrPhoneTaken) {
		t.Fatalf("expected ErrPhoneTaken, got %v", err)
	}
}

func TestAuthService_UpdateAccount_KeepsPasswordWhenEmpty(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo)
	created := registerTestAccount(t, svc, "0555123456", "secret1", domain.RoleCitizen)

	_, err := svc.UpdateAccount(context.Background(), created.ID, ports.RegisterInput{
		Username: "renamed",
		Phone:    "0555123456",
		Password: "",
		Role:     domain.RoleCitizen,
		StreetID: "st_1",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, err := svc.Login(context.Background(), "0555123456", "secret1"); err != nil {
		t.Fatalf("old password should still work after update: %v", err)
	}
}
