package domain

import (
	"errors"
	"time"
)

// ReportStatus represents the triage state of a citizen report.
type ReportStatus string

const (
	ReportPending    ReportStatus = "pending"
	ReportInProgress ReportStatus = "in_progress"
	ReportResolved   ReportStatus = "resolved"
	ReportRejected   ReportStatus = "rejected"
)

// validTransitions defines the allowed triage transitions.
var validTransitions = map[ReportStatus][]ReportStatus{
	ReportPending:    {ReportInProgress, ReportRejected},
	ReportInProgress: {ReportResolved, ReportRejected},
}

var ErrReportNotFound = errors.New("report not found")
var ErrInvalidTransition = errors.New("invalid status transition")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseReportStatus maps an inbound string to a ReportStatus.
func ParseReportStatus(s string) (ReportStatus, bool) {
	switch ReportStatus(s) {
	case ReportPending, ReportInProgress, ReportResolved, ReportRejected:
		return ReportStatus(s), true
	default:
		return "", false
	}
}

// Report is a citizen-submitted issue tied to a street.
type Report struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	Description string       `json:"description" bson:"description"`
	Status      ReportStatus `json:"status" bson:"status"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
	StreetID    string       `json:"street_id" bson:"street_id"`
	UserID      string       `json:"user_id" bson:"user_id"`
}

// OwnedBy reports whether the given principal submitted this report.
// Ownership is a plain id equality; it is checked by the report service, not
// by the policy layer.
func (r *Report) OwnedBy(p *Principal) bool {
	return p != nil && r.UserID == p.ID
}
