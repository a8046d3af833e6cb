package ports

import "github.com/citypulse/report-system/internal/core/domain"

// TokenCodec creates and parses the signed bearer tokens that carry a phone
// number as subject.
type TokenCodec interface {
	// Issue produces a signed token bound to the account's phone.
	Issue(phone string) (string, error)
	// ParseSubject recovers the subject claim iff the token is well-formed and
	// the signature verifies. Expiry is not enforced here; expired tokens are
	// rejected by IsValid.
	ParseSubject(token string) (string, error)
	// IsValid reports whether the token's signature verifies, the token is
	// unexpired and its subject matches the principal's phone.
	IsValid(token string, principal *domain.Principal) bool
}
