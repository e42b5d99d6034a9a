package dayclock

import "time"

// Clock resolves "now" against the fixed reference timezone and derives the
// calendar-day window and the quiet-window verdict from it. It is injected
// into the services so tests can pin the instant.
type Clock interface {
	Now() time.Time
	TodayWindow() (start, end time.Time)
	InRestrictedWindow(t time.Time) bool
}

// SystemClock is the production Clock. All decisions are pure functions of the
// wall clock and the fixed configuration.
type SystemClock struct {
	loc        *time.Location
	quietStart int
	quietEnd   int
}

func NewSystemClock(loc *time.Location, quietStart, quietEnd int) *SystemClock {
	return &SystemClock{
		loc:        loc,
		quietStart: quietStart,
		quietEnd:   quietEnd,
	}
}

// Now returns the current instant in the fixed timezone.
func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// TodayWindow returns [midnight, next midnight) of the current calendar date
// in the fixed timezone, as UTC instants. It is recomputed on every call so a
// long-running process stays correct across midnight.
func (c *SystemClock) TodayWindow() (time.Time, time.Time) {
	return DayWindow(c.Now(), c.loc)
}

// InRestrictedWindow reports whether t falls inside the configured quiet
// hours. A window with quietEnd <= quietStart wraps through midnight.
func (c *SystemClock) InRestrictedWindow(t time.Time) bool {
	hour := t.In(c.loc).Hour()
	if c.quietStart < c.quietEnd {
		return hour >= c.quietStart && hour < c.quietEnd
	}
	return hour >= c.quietStart || hour < c.quietEnd
}

// DayWindow computes the calendar-day window containing t under loc,
// expressed as UTC instants.
func DayWindow(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).UTC()
	return start, start.Add(24 * time.Hour)
}
