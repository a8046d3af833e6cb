package domain

import "time"

// AuthEventKind classifies entries in the authentication audit trail.
type AuthEventKind string

const (
	AuthLoginOK       AuthEventKind = "login_ok"
	AuthLoginFailed   AuthEventKind = "login_failed"
	AuthTokenRejected AuthEventKind = "token_rejected"
	AuthDenied        AuthEventKind = "denied"
)

// AuthEvent records one authentication or authorization outcome. Events are
// keyed by phone so the audit trail preserves per-account ordering.
type AuthEvent struct {
	Phone  string        `bson:"phone"`
	Kind   AuthEventKind `bson:"kind"`
	Detail string        `bson:"detail,omitempty"`
	At     time.Time     `bson:"at"`
}
