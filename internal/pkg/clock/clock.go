// Package clock supplies the current instant and day boundaries in the fixed
// organizational timezone. Every time-derived value in the attendance and
// worksheet services goes through a Clock so tests can pin the instant.
package clock

import "time"

const DateLayout = "2006-01-02"

type Clock interface {
	// Now returns the current instant in UTC.
	Now() time.Time
	// Today returns the current calendar date in the organizational
	// timezone, formatted as YYYY-MM-DD.
	Today() string
	// Location returns the organizational timezone.
	Location() *time.Location
}

type orgClock struct {
	loc *time.Location
}

// New builds a Clock pinned to the named organizational timezone. An
// unloadable name falls back to UTC rather than failing startup.
func New(timezone string) Clock {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return &orgClock{loc: loc}
}

func (c *orgClock) Now() time.Time {
	return time.Now().UTC()
}

func (c *orgClock) Today() string {
	return time.Now().In(c.loc).Format(DateLayout)
}

func (c *orgClock) Location() *time.Location {
	return c.loc
}

// Fixed is a Clock whose instant is set by tests.
type Fixed struct {
	Instant time.Time
	Loc     *time.Location
}

func NewFixed(instant time.Time, loc *time.Location) *Fixed {
	if loc == nil {
		loc = time.UTC
	}
	return &Fixed{Instant: instant.UTC(), Loc: loc}
}

func (f *Fixed) Now() time.Time { return f.Instant }

func (f *Fixed) Today() string {
	return f.Instant.In(f.Loc).Format(DateLayout)
}

func (f *Fixed) Location() *time.Location { return f.Loc }

// Advance moves the fixed instant forward.
func (f *Fixed) Advance(d time.Duration) {
	f.Instant = f.Instant.Add(d)
}
