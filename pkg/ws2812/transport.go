package ws2812

import (
	"context"
	"fmt"
	"log"
	"sync"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

const (
	// DefaultSPISpeed gives three SPI bits per WS2812 bit at 800kHz
	DefaultSPISpeed = 2400 * physic.KiloHertz
	// bytesPerLED is 24 data bits expanded to 72 SPI bits
	bytesPerLED = 9
	// resetBytes holds MOSI low for ~300us at 2.4MHz, enough to latch WS2812B
	resetBytes = 90
)

// Conn is the subset of spi.Conn used to push a frame
type Conn interface {
	Tx(w, r []byte) error
}

// SPI is an opened spidev port connected for WS2812 output
type SPI struct {
	port spi.PortCloser
	conn spi.Conn
}

// OpenSPI opens the named spidev port ("" picks the first one) at the given speed
func OpenSPI(name string, speedHz int64) (*SPI, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	port, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open SPI port %q: %w", name, err)
	}

	speed := DefaultSPISpeed
	if speedHz > 0 {
		speed = physic.Frequency(speedHz) * physic.Hertz
	}

	conn, err := port.Connect(speed, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to connect SPI port %q: %w", name, err)
	}

	log.Printf("WS2812 chain on SPI port %s at %s", port, speed)
	return &SPI{port: port, conn: conn}, nil
}

// Tx writes w to the chain
func (s *SPI) Tx(w, r []byte) error {
	return s.conn.Tx(w, r)
}

// Close closes the SPI port
func (s *SPI) Close() error {
	return s.port.Close()
}

// Transport collects pixel words from an unbuffered channel and writes
// one frame to the chain every count words.
// A sender blocks until Run has taken its word.
type Transport struct {
	conn  Conn
	count int
	words chan uint32
	frame []byte

	mu     sync.Mutex
	frames uint64
}

// NewTransport creates a transport for a chain of count LEDs
func NewTransport(conn Conn, count int) *Transport {
	return &Transport{
		conn:  conn,
		count: count,
		words: make(chan uint32),
		frame: make([]byte, count*bytesPerLED+resetBytes),
	}
}

// Words returns the channel pixel words are pushed onto
func (t *Transport) Words() chan<- uint32 {
	return t.words
}

// Frames returns the number of frames written so far
func (t *Transport) Frames() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frames
}

// Run drains the word channel until ctx is done
func (t *Transport) Run(ctx context.Context) error {
	n := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case w := <-t.words:
			ExpandWord(t.frame[n*bytesPerLED:], w)
			n++
			if n < t.count {
				continue
			}
			n = 0
			if err := t.conn.Tx(t.frame, nil); err != nil {
				log.Printf("Failed to write frame: %v", err)
				continue
			}
			t.mu.Lock()
			t.frames++
			t.mu.Unlock()
		}
	}
}

// Write sends a complete frame directly, bypassing the word channel.
// It must not be called while Run is active.
func (t *Transport) Write(words []uint32) error {
	if len(words) != t.count {
		return fmt.Errorf("frame has %d words, chain has %d LEDs", len(words), t.count)
	}
	for i, w := range words {
		ExpandWord(t.frame[i*bytesPerLED:], w)
	}
	if err := t.conn.Tx(t.frame, nil); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	t.mu.Lock()
	t.frames++
	t.mu.Unlock()
	return nil
}

// ExpandWord writes the 24-bit GRB word as 9 SPI bytes, MSB first.
// A one bit becomes 110 and a zero bit becomes 100.
func ExpandWord(dst []byte, word uint32) {
	for i := 0; i < 3; i++ {
		b := byte(word >> (16 - 8*i))
		var v uint32
		for bit := 7; bit >= 0; bit-- {
			if b&(1<<bit) != 0 {
				v = v<<3 | 0b110
			} else {
				v = v<<3 | 0b100
			}
		}
		dst[i*3] = byte(v >> 16)
		dst[i*3+1] = byte(v >> 8)
		dst[i*3+2] = byte(v)
	}
}
