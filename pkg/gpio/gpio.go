package gpio

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// Consumer is the label the lines are requested under
const Consumer = "digit-matrix"

// Pin represents a GPIO output line on the character device
type Pin struct {
	number int
	line   *gpiocdev.Line
	value  int
	mu     sync.Mutex
}

// NewPin requests an output line, initially low
func NewPin(chip string, number int) (*Pin, error) {
	log.Printf("Requesting GPIO line %s:%d as output", chip, number)

	line, err := gpiocdev.RequestLine(chip, number,
		gpiocdev.AsOutput(0),
		gpiocdev.WithConsumer(Consumer))
	if err != nil {
		return nil, fmt.Errorf("failed to request line %d on %s: %w", number, chip, err)
	}

	return &Pin{
		number: number,
		line:   line,
	}, nil
}

// Close releases the GPIO line
func (p *Pin) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.line == nil {
		return nil
	}
	err := p.line.Close()
	p.line = nil
	if err != nil {
		return fmt.Errorf("failed to release line %d: %w", p.number, err)
	}
	return nil
}

// SetValue sets the value of the GPIO pin (0 or 1)
func (p *Pin) SetValue(value int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.line == nil {
		return fmt.Errorf("line %d is closed", p.number)
	}
	if err := p.line.SetValue(value); err != nil {
		return fmt.Errorf("failed to set line %d: %w", p.number, err)
	}
	p.value = value
	return nil
}

// Value returns the last value written to the pin
func (p *Pin) Value() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Pulse drives the pin high for the given duration
func (p *Pin) Pulse(duration time.Duration) error {
	if err := p.SetValue(1); err != nil {
		return err
	}
	time.Sleep(duration)
	return p.SetValue(0)
}

// EdgeHandler is called for every falling edge with the line offset and the
// event time since boot. It runs on the gpiocdev event goroutine and must not block.
type EdgeHandler func(offset int, timestamp time.Duration)

// Buttons is a set of active-low input lines watched for falling edges
type Buttons struct {
	lines *gpiocdev.Lines
}

// WatchButtons requests the lines as pulled-up inputs and calls handler on
// every falling edge
func WatchButtons(chip string, offsets []int, handler EdgeHandler) (*Buttons, error) {
	log.Printf("Watching GPIO lines %s:%v for falling edges", chip, offsets)

	lines, err := gpiocdev.RequestLines(chip, offsets,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithConsumer(Consumer),
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			if evt.Type != gpiocdev.LineEventFallingEdge {
				return
			}
			handler(evt.Offset, evt.Timestamp)
		}))
	if err != nil {
		return nil, fmt.Errorf("failed to request lines %v on %s: %w", offsets, chip, err)
	}

	return &Buttons{lines: lines}, nil
}

// Close stops watching and releases the lines
func (b *Buttons) Close() error {
	return b.lines.Close()
}
