// Package clock provides time utilities for the application
package clock

import "time"

// Clock provides time and timer functionality
type Clock interface {
	Now() time.Time

	// AfterFunc schedules f to run after d elapses and returns a Timer
	// that can stop or re-arm the callback
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a scheduled callback that can be stopped or re-armed
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the
	// timer was still pending.
	Stop() bool

	// Reset re-arms the timer to fire after d. It reports whether the
	// timer was still pending.
	Reset(d time.Duration) bool
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f on the runtime timer heap
func (c *Real) AfterFunc(d time.Duration, f func()) Timer {
	return &realTimer{t: time.AfterFunc(d, f)}
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

type realTimer struct {
	t *time.Timer
}

func (r *realTimer) Stop() bool {
	return r.t.Stop()
}

func (r *realTimer) Reset(d time.Duration) bool {
	return r.t.Reset(d)
}
