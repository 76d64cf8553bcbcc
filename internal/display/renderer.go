package display

import (
	"context"
	"log"
	"time"
)

const (
	// DefaultHeartbeat is the heartbeat indicator toggle period
	DefaultHeartbeat = 100 * time.Millisecond
	// DefaultFrameSleep is the pause between loop iterations
	DefaultFrameSleep = 10 * time.Millisecond
)

// Clock reports the time since boot
type Clock interface {
	Now() time.Duration
}

// Indicator is the heartbeat output line
type Indicator interface {
	SetValue(value int) error
}

// DigitSource supplies the digit to show
type DigitSource interface {
	Load() int
}

// LoopConfig holds the main loop timings
type LoopConfig struct {
	Heartbeat  time.Duration
	FrameSleep time.Duration
	Brightness uint8
}

// DefaultLoopConfig returns the timings the device ships with
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		Heartbeat:  DefaultHeartbeat,
		FrameSleep: DefaultFrameSleep,
		Brightness: DefaultBrightness,
	}
}

// Renderer is the main loop: it blinks the heartbeat and redraws the
// current digit every iteration.
type Renderer struct {
	cfg        LoopConfig
	clock      Clock
	heartbeat  Indicator
	digits     DigitSource
	compositor *Compositor
	out        chan<- uint32

	// heartbeat state, only touched by the loop goroutine
	lastBlink time.Duration
	blinkOn   bool
}

// NewRenderer creates a main loop writing frames to out
func NewRenderer(cfg LoopConfig, clock Clock, heartbeat Indicator, digits DigitSource, out chan<- uint32) *Renderer {
	return &Renderer{
		cfg:        cfg,
		clock:      clock,
		heartbeat:  heartbeat,
		digits:     digits,
		compositor: NewCompositor(cfg.Brightness),
		out:        out,
		lastBlink:  clock.Now(),
	}
}

// Start runs the loop until ctx is cancelled
func (r *Renderer) Start(ctx context.Context) error {
	for {
		if err := r.Step(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.cfg.FrameSleep):
		}
	}
}

// Step runs a single iteration of the loop
func (r *Renderer) Step(ctx context.Context) error {
	now := r.clock.Now()
	if now-r.lastBlink > r.cfg.Heartbeat {
		r.blinkOn = !r.blinkOn
		if err := r.heartbeat.SetValue(boolToInt(r.blinkOn)); err != nil {
			log.Printf("Failed to drive heartbeat: %v", err)
		}
		r.lastBlink = now
	}

	grid := r.compositor.Compose(r.digits.Load())
	return Render(ctx, &grid, r.out)
}

// Heartbeat reports whether the heartbeat indicator is currently on
func (r *Renderer) Heartbeat() bool {
	return r.blinkOn
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
