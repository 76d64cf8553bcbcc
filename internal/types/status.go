package types

import (
	"time"
)

// ButtonID identifies one of the two push-buttons
type ButtonID int

const (
	// ButtonA increments the displayed digit
	ButtonA ButtonID = iota
	// ButtonB decrements the displayed digit
	ButtonB
	// NumButtons is the number of buttons on the board
	NumButtons
)

// String returns the button name
func (b ButtonID) String() string {
	switch b {
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	default:
		return "unknown"
	}
}

// Edge is a single falling edge on a button line.
// Timestamp is measured from boot on the monotonic clock.
type Edge struct {
	Button    ButtonID
	Timestamp time.Duration
}

// GPIOConfig represents the GPIO line assignment
type GPIOConfig struct {
	Chip      string `mapstructure:"chip"`
	ButtonA   int    `mapstructure:"button-a"`
	ButtonB   int    `mapstructure:"button-b"`
	Heartbeat int    `mapstructure:"heartbeat"`
}

// LEDConfig represents the configuration for the WS2812 chain
type LEDConfig struct {
	SPIPort    string `mapstructure:"spi-port"`
	SPISpeedHz int64  `mapstructure:"spi-speed-hz"`
	Count      int    `mapstructure:"count"`
}

// TimingConfig represents the debounce and loop timings
type TimingConfig struct {
	Debounce   time.Duration `mapstructure:"debounce"`
	Heartbeat  time.Duration `mapstructure:"heartbeat"`
	FrameSleep time.Duration `mapstructure:"frame-sleep"`
}

// DiagConfig represents the diagnostic queue configuration
type DiagConfig struct {
	QueueSize int `mapstructure:"queue-size"`
}
