// Package timer bounds a challenge's duration. The browser shows the countdown;
// the server only trusts its own clock for the elapsed time it scores.
package timer

import "time"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Countdown is a time window that started at StartedAt and lasts Limit.
// A zero Limit means the window never expires.
type Countdown struct {
	StartedAt time.Time
	Limit     time.Duration
	clock     Clock
}

// Start opens a countdown at the clock's current time.
func Start(clock Clock, limit time.Duration) Countdown {
	return Resume(clock, clock.Now(), limit)
}

// Resume rebuilds a countdown from a stored start time.
func Resume(clock Clock, startedAt time.Time, limit time.Duration) Countdown {
	if clock == nil {
		clock = SystemClock{}
	}
	return Countdown{StartedAt: startedAt, Limit: limit, clock: clock}
}

// Seconds converts a limit in seconds to a duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Elapsed is the time since start, never negative.
func (c Countdown) Elapsed() time.Duration {
	d := c.clock.Now().Sub(c.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

// ElapsedSeconds is Elapsed in seconds.
func (c Countdown) ElapsedSeconds() float64 {
	return c.Elapsed().Seconds()
}

// Remaining is the time left, 0 once expired. Unlimited countdowns report 0.
func (c Countdown) Remaining() time.Duration {
	if c.Limit <= 0 {
		return 0
	}
	return max(c.Limit-c.Elapsed(), 0)
}

// Expired reports whether the limit has been reached.
func (c Countdown) Expired() bool {
	return c.Limit > 0 && c.Elapsed() >= c.Limit
}
