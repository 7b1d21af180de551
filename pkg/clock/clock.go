package clock

import "time"

// Clock supplies the business date, the logical "today" used for
// date-boundary validation, distinct from wall-clock time. Injected so
// tests can pin it.
type Clock interface {
	BusinessDate() time.Time
}

// System is the default clock: UTC calendar date, midnight-truncated.
type System struct{}

func (System) BusinessDate() time.Time {
	return Midnight(time.Now().UTC())
}

// Fixed always reports the same business date.
type Fixed struct{ Date time.Time }

func (f Fixed) BusinessDate() time.Time { return Midnight(f.Date) }

// Midnight truncates t to 00:00:00 UTC on the same calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
