package domain

import "errors"

// Role is the closed set of account roles. Authorization decisions compare
// against these values only; free-text roles are rejected at the edges.
type Role string

const (
	RoleCitizen Role = "CITIZEN"
	RoleAdmin   Role = "ADMIN"
)

var ErrAccountNotFound = errors.New("account not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTokenInvalid = errors.New("token invalid")
var ErrForbidden = errors.New("access forbidden")
var ErrPhoneTaken = errors.New("phone number already taken")
var ErrUsernameTaken = errors.New("username already taken")

// ParseRole maps an inbound string to a Role, rejecting anything outside the
// closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCitizen, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// Authority returns the normalized permission name for the role (e.g. ROLE_ADMIN).
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}

// Account models a stored user record. Phone is the login identifier (exactly
// 10 digits); phone and username are each globally unique.
type Account struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	StreetID     string `json:"street_id,omitempty"`
}

// Principal is the read-only projection of an Account used for authorization.
// It is created fresh per request by the identity resolver and bound into the
// request context; it is never cached or mutated.
type Principal struct {
	ID          string
	Username    string
	Phone       string
	Role        Role
	Authorities []string
}

// NewPrincipal builds a Principal from a stored account.
func NewPrincipal(a *Account) *Principal {
	return &Principal{
		ID:          a.ID,
		Username:    a.Username,
		Phone:       a.Phone,
		Role:        a.Role,
		Authorities: []string{a.Role.Authority()},
	}
}
