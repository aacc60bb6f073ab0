package session

import (
	"context"
)

// SessionRepository defines data access for attendance sessions. The store
// is the serialization point for the one-session-per-day invariant: Create
// must be atomic create-if-not-exists on (employee_id, date) and return
// ErrAlreadyClockedIn when a concurrent or earlier clock-in won.
type SessionRepository interface {
	// Create inserts a new session; exactly one Create per (employee, date)
	// succeeds.
	Create(ctx context.Context, s Session) (Session, error)

	// GetByEmployeeAndDate returns the day's session, nil if none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*Session, error)

	// GetOpenByEmployeeAndDate returns the day's session only when its
	// status is active or on_break, nil otherwise.
	GetOpenByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*Session, error)

	// Update persists the session's scalar fields and upserts its breaks.
	Update(ctx context.Context, s Session) error

	// UpdateScreenActive writes the estimator counter onto one session.
	UpdateScreenActive(ctx context.Context, sessionID string, seconds int64) error

	// SetWorksheetSubmitted flags the day's session after a worksheet
	// leaves draft. No-op when no session exists for that day.
	SetWorksheetSubmitted(ctx context.Context, employeeID string, date string) error

	// List retrieves sessions with filters and pagination, newest first.
	List(ctx context.Context, filter HistoryFilter) ([]Session, int64, error)
}

// BreakSettingsRepository defines data access for per-team break policy.
type BreakSettingsRepository interface {
	GetByTeam(ctx context.Context, teamID string) (*BreakSettings, error)
	Create(ctx context.Context, settings BreakSettings) (BreakSettings, error)
	Update(ctx context.Context, settings BreakSettings) error
}
