package session

import "time"

// BreakSettings is a team's optional break policy; at most one per team.
// Limits are only enforced while EnforceLimits is set.
type BreakSettings struct {
	ID                      string
	TeamID                  string
	EnforceLimits           bool
	MaxBreaksPerDay         *int
	MaxBreakDurationMinutes *int
	LunchBreakDuration      int
	ShortBreakDuration      int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
