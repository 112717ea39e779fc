package ports

import (
	"context"
	"time"
)

const (
	AuditRegister     = "register"
	AuditLoginSuccess = "login_success"
	AuditLoginFailure = "login_failure"
	AuditLoginLocked  = "login_locked"
)

// AuditEvent is a single security-relevant action kept for later review.
type AuditEvent struct {
	Action    string
	Username  string
	UserID    int64
	RequestID string
	At        time.Time
}

// AuditRecorder persists audit events. Callers treat failures as non-fatal.
type AuditRecorder interface {
	Record(ctx context.Context, event AuditEvent) error
}

// LoginThrottle counts failed logins per username inside a sliding window.
type LoginThrottle interface {
	// Blocked reports whether further attempts for username must be refused.
	Blocked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
