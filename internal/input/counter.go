// Package input turns button edges into changes of the displayed digit.
package input

import "sync/atomic"

const (
	// MinDigit is the lowest value the counter holds
	MinDigit = 0
	// MaxDigit is the highest value the counter holds
	MaxDigit = 9
)

// Counter is the displayed digit. It is written from edge handlers and read
// by the main loop, so every access is a single atomic word operation and
// nothing ever blocks.
type Counter struct {
	v atomic.Int32
}

// Load returns the current digit
func (c *Counter) Load() int {
	return int(c.v.Load())
}

// Store sets the digit, limited to [MinDigit, MaxDigit]
func (c *Counter) Store(d int) {
	c.v.Store(int32(saturate(d)))
}

// Add moves the digit by delta, saturating at the bounds.
// It returns the new digit and whether it changed.
func (c *Counter) Add(delta int) (int, bool) {
	for {
		old := c.v.Load()
		next := int32(saturate(int(old) + delta))
		if next == old {
			return int(old), false
		}
		if c.v.CompareAndSwap(old, next) {
			return int(next), true
		}
	}
}

func saturate(d int) int {
	if d < MinDigit {
		return MinDigit
	}
	if d > MaxDigit {
		return MaxDigit
	}
	return d
}
