package input

import (
	"sync/atomic"
	"time"

	"github.com/fkcurrie/digit-matrix-golang/internal/diag"
	"github.com/fkcurrie/digit-matrix-golang/internal/types"
)

// DefaultWindow is the minimum time between accepted edges on one button
const DefaultWindow = 400 * time.Millisecond

// Stamp is the time of the last accepted edge on a button.
// A zero Stamp has never accepted an edge.
type Stamp struct {
	At    time.Duration
	Armed bool
}

// Transition decides whether ev is accepted given the button's last accepted edge.
// An edge within window of the last accepted one is dropped and leaves the stamp
// unchanged. An accepted edge returns the new stamp and the button's counter delta.
func Transition(ev types.Edge, last Stamp, window time.Duration) (next Stamp, delta int, accepted bool) {
	if last.Armed && ev.Timestamp-last.At <= window {
		return last, 0, false
	}

	next = Stamp{At: ev.Timestamp, Armed: true}
	switch ev.Button {
	case types.ButtonA:
		delta = 1
	case types.ButtonB:
		delta = -1
	}
	return next, delta, true
}

// Notifier receives counter changes. Notify must not block.
type Notifier interface {
	Notify(ev diag.Event)
}

// Stats counts edges seen on one button
type Stats struct {
	Accepted   uint64
	Suppressed uint64
}

// Debouncer applies button edges to a Counter.
// Each button's stamp is only touched by the handler for that button's line;
// the counter is the only state shared with the main loop.
type Debouncer struct {
	window   time.Duration
	counter  *Counter
	notifier Notifier

	last       [types.NumButtons]Stamp
	accepted   [types.NumButtons]atomic.Uint64
	suppressed [types.NumButtons]atomic.Uint64
}

// NewDebouncer creates a debouncer driving counter. notifier may be nil.
func NewDebouncer(window time.Duration, counter *Counter, notifier Notifier) *Debouncer {
	return &Debouncer{
		window:   window,
		counter:  counter,
		notifier: notifier,
	}
}

// HandleEdge processes one falling edge and reports whether it was accepted.
// It is safe to call from an edge handler: it never blocks or allocates.
func (d *Debouncer) HandleEdge(ev types.Edge) bool {
	if ev.Button < 0 || ev.Button >= types.NumButtons {
		return false
	}

	next, delta, ok := Transition(ev, d.last[ev.Button], d.window)
	if !ok {
		d.suppressed[ev.Button].Add(1)
		return false
	}
	d.last[ev.Button] = next
	d.accepted[ev.Button].Add(1)

	digit, changed := d.counter.Add(delta)
	if changed && d.notifier != nil {
		kind := diag.Increment
		if delta < 0 {
			kind = diag.Decrement
		}
		d.notifier.Notify(diag.Event{Kind: kind, Digit: digit, At: ev.Timestamp})
	}
	return true
}

// Stats returns the edge counts for a button
func (d *Debouncer) Stats(b types.ButtonID) Stats {
	if b < 0 || b >= types.NumButtons {
		return Stats{}
	}
	return Stats{
		Accepted:   d.accepted[b].Load(),
		Suppressed: d.suppressed[b].Load(),
	}
}

// LastAccepted returns the stamp of the last accepted edge on a button.
// It must not race with HandleEdge for the same button.
func (d *Debouncer) LastAccepted(b types.ButtonID) Stamp {
	return d.last[b]
}

// LineHandler returns a callback for raw line events. Offsets not in lines are ignored.
func (d *Debouncer) LineHandler(lines map[int]types.ButtonID) func(offset int, ts time.Duration) {
	return func(offset int, ts time.Duration) {
		b, ok := lines[offset]
		if !ok {
			return
		}
		d.HandleEdge(types.Edge{Button: b, Timestamp: ts})
	}
}
