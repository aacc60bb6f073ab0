package session

import (
	"time"
)

// Status of an attendance session. Incomplete is never produced by the
// engine itself; it exists for admin correction of abandoned sessions.
type Status string

const (
	StatusActive     Status = "active"
	StatusOnBreak    Status = "on_break"
	StatusCompleted  Status = "completed"
	StatusIncomplete Status = "incomplete"
)

type BreakType string

const (
	BreakShort   BreakType = "short_break"
	BreakLunch   BreakType = "lunch_break"
	BreakTea     BreakType = "tea_break"
	BreakMeeting BreakType = "meeting"
	BreakOther   BreakType = "other"
)

func ValidBreakTypes() []string {
	return []string{
		string(BreakShort),
		string(BreakLunch),
		string(BreakTea),
		string(BreakMeeting),
		string(BreakOther),
	}
}

// RequiresComment reports whether the break type must carry an explanation.
func (b BreakType) RequiresComment() bool {
	return b == BreakMeeting || b == BreakOther
}

// BreakRecord is one start/end interval owned by exactly one Session.
type BreakRecord struct {
	BreakID         string
	BreakType       BreakType
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes int
	Comment         *string
}

// Open reports whether the break has started but not ended.
func (b *BreakRecord) Open() bool {
	return b.EndTime == nil
}

// Session is one employee's working day, from clock-in to clock-out.
// At most one exists per (employee_id, date); the date is the calendar day
// in the organizational timezone, all instants are UTC.
type Session struct {
	ID                     string
	EmployeeID             string
	Date                   string // YYYY-MM-DD, organizational timezone
	LoginTime              time.Time
	LogoutTime             *time.Time
	Breaks                 []BreakRecord
	TotalWorkHours         float64
	TotalBreakMinutes      int
	OvertimeHours          float64
	ScreenActiveSeconds    int64
	LastScreenActiveUpdate *time.Time
	WorksheetSubmitted     bool
	CurrentBreakID         *string
	Notes                  *string
	Status                 Status
	CreatedAt              time.Time
	UpdatedAt              time.Time

	// DTO / Join
	EmployeeName *string
}

// OpenBreak returns the in-progress break, or nil. The engine maintains at
// most one open break at any time.
func (s *Session) OpenBreak() *BreakRecord {
	if s.CurrentBreakID == nil {
		return nil
	}
	for i := range s.Breaks {
		if s.Breaks[i].BreakID == *s.CurrentBreakID && s.Breaks[i].Open() {
			return &s.Breaks[i]
		}
	}
	return nil
}

// Active reports whether the session can still be mutated by the engine.
func (s *Session) Active() bool {
	return s.Status == StatusActive || s.Status == StatusOnBreak
}

// BreakMinutes recomputes total break minutes from closed records, plus the
// in-progress duration when a break is open at the given instant.
func (s *Session) BreakMinutes(now time.Time) int {
	total := 0
	for i := range s.Breaks {
		b := &s.Breaks[i]
		if b.Open() {
			total += int(now.Sub(b.StartTime).Minutes())
			continue
		}
		total += b.DurationMinutes
	}
	return total
}
