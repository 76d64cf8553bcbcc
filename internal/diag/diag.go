// Package diag carries human-readable counter messages out of edge handlers.
// Handlers only enqueue; a separate goroutine does the printing.
package diag

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"
)

// DefaultQueueSize is the number of events buffered before new ones are dropped
const DefaultQueueSize = 16

// Kind is the type of a diagnostic event
type Kind int

const (
	// Increment means the digit went up
	Increment Kind = iota
	// Decrement means the digit went down
	Decrement
)

// Event is a single counter change
type Event struct {
	Kind  Kind
	Digit int
	At    time.Duration
}

// String returns the log line for the event
func (e Event) String() string {
	switch e.Kind {
	case Increment:
		return fmt.Sprintf("Incrementing: %d", e.Digit)
	case Decrement:
		return fmt.Sprintf("Decrementing: %d", e.Digit)
	default:
		return fmt.Sprintf("Unknown event %d: %d", e.Kind, e.Digit)
	}
}

// Queue is a bounded, drop-on-full event queue
type Queue struct {
	events  chan Event
	dropped atomic.Uint64
	logger  *log.Logger
}

// NewQueue creates a queue printing through logger, or the standard logger if nil
func NewQueue(size int, logger *log.Logger) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Queue{
		events: make(chan Event, size),
		logger: logger,
	}
}

// Notify enqueues ev without blocking. When the queue is full the event is dropped.
func (q *Queue) Notify(ev Event) {
	select {
	case q.events <- ev:
	default:
		q.dropped.Add(1)
	}
}

// Dropped returns the number of events lost to a full queue
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}

// Run prints queued events until ctx is cancelled
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			if n := q.Dropped(); n > 0 {
				q.logger.Printf("Dropped %d diagnostic messages", n)
			}
			return ctx.Err()
		case ev := <-q.events:
			q.logger.Println(ev)
		}
	}
}
