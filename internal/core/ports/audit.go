package ports

import (
	"context"

	"github.com/citypulse/report-system/internal/core/domain"
)

// AuditTrail accepts auth events for asynchronous recording. Enqueue never
// blocks the calling request; events may be dropped under backpressure.
type AuditTrail interface {
	Enqueue(event domain.AuthEvent)
}

// AuditSink persists auth events. Implemented by the mongo audit repository.
type AuditSink interface {
	Record(ctx context.Context, event domain.AuthEvent) error
}
