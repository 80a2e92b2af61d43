package model

import (
	"time"
)

// Clock returns the current time. Components take one so tests can pin it.
type Clock func() time.Time

// Now returns the current time in UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// Or returns c, or Now when c is nil.
func (c Clock) Or() Clock {
	if c == nil {
		return Now
	}
	return c
}
