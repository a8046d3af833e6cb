package ports

import (
	"context"

	"github.com/citypulse/report-system/internal/core/domain"
)

// IdentityResolver bridges stored accounts to request-scoped principals.
// LoadByPhone hits the account store on every call; existence is never cached
// across requests because accounts can be deleted between token issuance and use.
type IdentityResolver interface {
	LoadByPhone(ctx context.Context, phone string) (*domain.Principal, error)
}
