package config

import (
	"fmt"
	"strings"

	"github.com/fkcurrie/digit-matrix-golang/internal/diag"
	"github.com/fkcurrie/digit-matrix-golang/internal/display"
	"github.com/fkcurrie/digit-matrix-golang/internal/input"
	"github.com/fkcurrie/digit-matrix-golang/internal/types"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. DIGIT_MATRIX_GPIO_CHIP
const EnvPrefix = "DIGIT_MATRIX"

// Config represents the application configuration
type Config struct {
	GPIO       types.GPIOConfig   `mapstructure:"gpio"`
	LEDs       types.LEDConfig    `mapstructure:"leds"`
	Timing     types.TimingConfig `mapstructure:"timing"`
	Brightness int                `mapstructure:"brightness"`
	Diag       types.DiagConfig   `mapstructure:"diag"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		GPIO: types.GPIOConfig{
			Chip:      "gpiochip0",
			ButtonA:   5,
			ButtonB:   6,
			Heartbeat: 13,
		},
		LEDs: types.LEDConfig{
			SPIPort:    "",
			SPISpeedHz: 2400000,
			Count:      types.NumCells,
		},
		Timing: types.TimingConfig{
			Debounce:   input.DefaultWindow,
			Heartbeat:  display.DefaultHeartbeat,
			FrameSleep: display.DefaultFrameSleep,
		},
		Brightness: display.DefaultBrightness,
		Diag: types.DiagConfig{
			QueueSize: diag.DefaultQueueSize,
		},
	}
}

// LoadConfig loads the configuration from a file. An empty path uses the
// defaults plus environment overrides only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("gpio.chip", d.GPIO.Chip)
	v.SetDefault("gpio.button-a", d.GPIO.ButtonA)
	v.SetDefault("gpio.button-b", d.GPIO.ButtonB)
	v.SetDefault("gpio.heartbeat", d.GPIO.Heartbeat)
	v.SetDefault("leds.spi-port", d.LEDs.SPIPort)
	v.SetDefault("leds.spi-speed-hz", d.LEDs.SPISpeedHz)
	v.SetDefault("leds.count", d.LEDs.Count)
	v.SetDefault("timing.debounce", d.Timing.Debounce)
	v.SetDefault("timing.heartbeat", d.Timing.Heartbeat)
	v.SetDefault("timing.frame-sleep", d.Timing.FrameSleep)
	v.SetDefault("brightness", d.Brightness)
	v.SetDefault("diag.queue-size", d.Diag.QueueSize)
}

// Validate checks the configuration for values the device cannot run with
func (c *Config) Validate() error {
	switch {
	case c.GPIO.Chip == "":
		return fmt.Errorf("gpio.chip must be set")
	case c.GPIO.ButtonA < 0 || c.GPIO.ButtonB < 0 || c.GPIO.Heartbeat < 0:
		return fmt.Errorf("gpio lines must be non-negative")
	case c.GPIO.ButtonA == c.GPIO.ButtonB:
		return fmt.Errorf("gpio.button-a and gpio.button-b must differ, both are %d", c.GPIO.ButtonA)
	case c.LEDs.Count != types.NumCells:
		return fmt.Errorf("leds.count must be %d, got %d", types.NumCells, c.LEDs.Count)
	case c.LEDs.SPISpeedHz <= 0:
		return fmt.Errorf("leds.spi-speed-hz must be positive")
	case c.Timing.Debounce <= 0:
		return fmt.Errorf("timing.debounce must be positive")
	case c.Timing.Heartbeat <= 0:
		return fmt.Errorf("timing.heartbeat must be positive")
	case c.Timing.FrameSleep < 0:
		return fmt.Errorf("timing.frame-sleep must not be negative")
	case c.Brightness < 0 || c.Brightness > 255:
		return fmt.Errorf("brightness must be between 0 and 255")
	}
	return nil
}

// LoopConfig returns the main loop settings
func (c *Config) LoopConfig() display.LoopConfig {
	return display.LoopConfig{
		Heartbeat:  c.Timing.Heartbeat,
		FrameSleep: c.Timing.FrameSleep,
		Brightness: uint8(c.Brightness),
	}
}

// ButtonLines maps line offsets to buttons
func (c *Config) ButtonLines() map[int]types.ButtonID {
	return map[int]types.ButtonID{
		c.GPIO.ButtonA: types.ButtonA,
		c.GPIO.ButtonB: types.ButtonB,
	}
}
