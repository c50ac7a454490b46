package testutil

import "time"

// FixedClock always reports the same instant.
//
// Thread-safety: FixedClock is immutable and safe for concurrent use.
type FixedClock struct {
	at time.Time
}

// NewFixedClock creates a clock stopped at at. A zero time means
// 2024-05-17 10:00 UTC.
func NewFixedClock(at time.Time) FixedClock {
	if at.IsZero() {
		at = time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC)
	}
	return FixedClock{at: at}
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.at
}
