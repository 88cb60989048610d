// Package clock derives the canonical date keys used to decide whether
// today's log still needs extracting.
package clock

import "time"

// DateLayout is the YYYYMMDD form used for extraction dates.
const DateLayout = "20060102"

// Clock reports the current local time.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

// Now implements Clock.
func (System) Now() time.Time { return time.Now() }

// Fixed always reports the same instant. Useful in tests and one-shot commands.
type Fixed time.Time

// Now implements Clock.
func (f Fixed) Now() time.Time { return time.Time(f) }

// Key formats t as a YYYYMMDD date key in t's own location.
func Key(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the date key for the clock's current local day.
func Today(c Clock) string {
	if c == nil {
		c = System{}
	}
	return Key(c.Now())
}

// ValidKey reports whether s is a well-formed YYYYMMDD date.
func ValidKey(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// UntilNextDay returns how long until the clock's local midnight.
func UntilNextDay(c Clock) time.Duration {
	if c == nil {
		c = System{}
	}
	now := c.Now()
	y, m, d := now.Date()
	next := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	return next.Sub(now)
}
