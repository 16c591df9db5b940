package data

import "time"

// TimeProvider abstracts time.Now for testability.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider returns the actual current time.
type RealTimeProvider struct{}

// Now returns the current time.
func (RealTimeProvider) Now() time.Time { return time.Now() }

// FixedTimeProvider returns a fixed time (useful for tests).
type FixedTimeProvider struct {
	Fixed time.Time
}

// Now returns the fixed time.
func (f FixedTimeProvider) Now() time.Time { return f.Fixed }
