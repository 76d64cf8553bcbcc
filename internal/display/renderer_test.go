package display

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fkcurrie/digit-matrix-golang/internal/clock"
	"github.com/fkcurrie/digit-matrix-golang/internal/glyph"
	"github.com/fkcurrie/digit-matrix-golang/internal/input"
	"github.com/fkcurrie/digit-matrix-golang/internal/types"
	"github.com/fkcurrie/digit-matrix-golang/pkg/ws2812"
)

type fakeIndicator struct {
	values []int
	err    error
}

func (f *fakeIndicator) SetValue(v int) error {
	f.values = append(f.values, v)
	return f.err
}

func newTestRenderer(c *clock.Manual, led Indicator, counter *input.Counter) (*Renderer, chan uint32) {
	out := make(chan uint32, types.NumCells)
	return NewRenderer(DefaultLoopConfig(), c, led, counter, out), out
}

func drain(out chan uint32) []uint32 {
	words := make([]uint32, 0, types.NumCells)
	for len(out) > 0 {
		words = append(words, <-out)
	}
	return words
}

func TestStepHeartbeat(t *testing.T) {
	c := clock.NewManual(time.Second)
	led := &fakeIndicator{}
	r, out := newTestRenderer(c, led, &input.Counter{})

	steps := []struct {
		advance time.Duration
		want    []int
	}{
		{50 * time.Millisecond, nil},
		{50 * time.Millisecond, nil},       // exactly one period, not yet
		{1 * time.Millisecond, []int{1}},   // past the period
		{100 * time.Millisecond, []int{1}}, // one period since the toggle
		{10 * time.Millisecond, []int{1, 0}},
	}

	for i, s := range steps {
		c.Advance(s.advance)
		if err := r.Step(context.Background()); err != nil {
			t.Fatalf("Step() error = %v", err)
		}
		drain(out)
		if len(led.values) != len(s.want) {
			t.Fatalf("step %d: heartbeat writes = %v, want %v", i, led.values, s.want)
		}
		for j := range s.want {
			if led.values[j] != s.want[j] {
				t.Errorf("step %d: heartbeat writes = %v, want %v", i, led.values, s.want)
			}
		}
	}
}

func TestStepContinuesAfterHeartbeatError(t *testing.T) {
	c := clock.NewManual(0)
	led := &fakeIndicator{err: errors.New("line closed")}
	r, out := newTestRenderer(c, led, &input.Counter{})

	c.Advance(time.Second)
	if err := r.Step(context.Background()); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if n := len(drain(out)); n != types.NumCells {
		t.Errorf("rendered %d words, want %d", n, types.NumCells)
	}
	if !r.Heartbeat() {
		t.Error("heartbeat state not toggled")
	}
}

func TestEndToEndDigitThree(t *testing.T) {
	c := clock.NewManual(0)
	var counter input.Counter
	d := input.NewDebouncer(input.DefaultWindow, &counter, nil)
	r, out := newTestRenderer(c, &fakeIndicator{}, &counter)

	for _, at := range []time.Duration{0, 410 * time.Millisecond, 820 * time.Millisecond} {
		d.HandleEdge(types.Edge{Button: types.ButtonA, Timestamp: at})
	}
	c.Advance(820 * time.Millisecond)
	if err := r.Step(context.Background()); err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	words := drain(out)
	if len(words) != types.NumCells {
		t.Fatalf("rendered %d words, want %d", len(words), types.NumCells)
	}
	bitmap := glyph.Digit(3)
	for i, p := range Order() {
		g, red, b := ws2812.Decode(words[i])
		want := uint8(0)
		if bitmap[p.Row][p.Col] {
			want = DefaultBrightness
		}
		if g != 0 || b != 0 || red != want {
			t.Errorf("cell %+v = (g %d, r %d, b %d), want red %d", p, g, red, b, want)
		}
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	c := clock.NewManual(0)
	out := make(chan uint32)
	r := NewRenderer(DefaultLoopConfig(), c, &fakeIndicator{}, &input.Counter{}, out)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Start(ctx) }()

	// take two full frames, then stop while the loop is blocked on the third
	for i := 0; i < 2*types.NumCells; i++ {
		<-out
	}
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Start() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Start() did not return after cancel")
	}
}
