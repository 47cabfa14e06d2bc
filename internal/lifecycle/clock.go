package lifecycle

import "time"

// Clock abstracts wall-clock access so advancement rules can be evaluated
// against a fixed instant in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
