// Package clock abstracts the wall clock so freshness checks can be tested.
// All timestamps are unix seconds in UTC.
package clock

import "time"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System is the real clock.
var System Clock = systemClock{}

// Fixed returns a clock frozen at t.
func Fixed(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// Unix returns the current time of c in unix seconds.
func Unix(c Clock) int64 {
	return c.Now().Unix()
}
