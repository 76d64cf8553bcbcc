// Package clock reads time since boot on the clock GPIO edge events are stamped with.
package clock

import (
	"time"

	"golang.org/x/sys/unix"
)

// Monotonic reads CLOCK_MONOTONIC
type Monotonic struct{}

// Now returns the time since boot
func (Monotonic) Now() time.Duration {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		// CLOCK_MONOTONIC is always available on Linux
		panic(err)
	}
	return time.Duration(ts.Nano())
}

// Manual is a clock that only moves when told to
type Manual struct {
	now time.Duration
}

// NewManual creates a manual clock starting at start
func NewManual(start time.Duration) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time
func (m *Manual) Now() time.Duration {
	return m.now
}

// Advance moves the clock forward by d
func (m *Manual) Advance(d time.Duration) {
	m.now += d
}
