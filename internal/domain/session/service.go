package session

import (
	"context"
)

// SessionService defines the attendance session engine operations. Identity
// comes from the request context; every derived hour/minute value is computed
// from stored timestamps, never taken from the client.
type SessionService interface {
	// ClockIn opens today's session; fails with ErrAlreadyClockedIn when
	// one already exists.
	ClockIn(ctx context.Context) (SessionResponse, error)

	// ClockOut completes today's session, force-closing an open break.
	// Refuses with ErrWorksheetNotSubmitted unless the day's worksheet has
	// been submitted or a manager/admin forces it.
	ClockOut(ctx context.Context, req ClockOutRequest) (SessionResponse, error)

	// StartBreak appends an open break and moves the session to on_break.
	StartBreak(ctx context.Context, req StartBreakRequest) (SessionResponse, error)

	// EndBreak closes the open break and moves the session back to active.
	EndBreak(ctx context.Context) (SessionResponse, error)

	// GetCurrentSession returns today's session or HasSession=false; it
	// never returns a state error.
	GetCurrentSession(ctx context.Context) (CurrentSessionResponse, error)

	// GetHistory lists sessions; employees are scoped to their own.
	GetHistory(ctx context.Context, filter HistoryFilter) (HistoryResponse, error)

	// UpdateScreenActiveSeconds upserts the estimator counter onto the open
	// session. Decreases, implausible jumps, and a missing session are
	// no-ops: the call races client timers against session closure.
	UpdateScreenActiveSeconds(ctx context.Context, req UpdateScreenActiveRequest) error

	// Break settings (per-team policy)
	GetBreakSettings(ctx context.Context, teamID string) (BreakSettingsResponse, error)
	CreateBreakSettings(ctx context.Context, req CreateBreakSettingsRequest) (BreakSettingsResponse, error)
	UpdateBreakSettings(ctx context.Context, req UpdateBreakSettingsRequest) (BreakSettingsResponse, error)
}
