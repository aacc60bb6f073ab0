package session

import "errors"

// Attendance session domain errors
var (
	// Clock-in/out errors
	ErrAlreadyClockedIn       = errors.New("already clocked in for today")
	ErrNoActiveSession        = errors.New("no active session found for today")
	ErrWorksheetNotSubmitted  = errors.New("daily worksheet must be submitted before clocking out")
	ErrForceClockOutForbidden = errors.New("only a manager or admin can clock out without a submitted worksheet")

	// Break errors
	ErrAlreadyOnBreak        = errors.New("a break is already in progress")
	ErrNoOpenBreak           = errors.New("no active break found")
	ErrBreakLimitReached     = errors.New("maximum breaks for today reached")
	ErrBreakDurationExceeded = errors.New("maximum total break duration for today reached")

	// General errors
	ErrSessionNotFound = errors.New("attendance session not found")
	ErrUnauthorized    = errors.New("unauthorized to access this attendance session")

	// Break settings errors
	ErrBreakSettingsNotFound = errors.New("break settings not found for this team")
	ErrBreakSettingsExist    = errors.New("break settings already exist for this team")
)
