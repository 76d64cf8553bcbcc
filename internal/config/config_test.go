package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fkcurrie/digit-matrix-golang/internal/types"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := DefaultConfig()
	if *cfg != *want {
		t.Errorf("LoadConfig(\"\") = %+v, want %+v", cfg, want)
	}
	if cfg.Timing.Debounce != 400*time.Millisecond {
		t.Errorf("debounce = %v, want 400ms", cfg.Timing.Debounce)
	}
	if cfg.Brightness != 51 {
		t.Errorf("brightness = %d, want 51", cfg.Brightness)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`gpio:
  chip: gpiochip4
  button-a: 17
  button-b: 27
timing:
  debounce: 250ms
brightness: 128
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.GPIO.Chip != "gpiochip4" || cfg.GPIO.ButtonA != 17 || cfg.GPIO.ButtonB != 27 {
		t.Errorf("gpio = %+v, want gpiochip4 17 27", cfg.GPIO)
	}
	if cfg.GPIO.Heartbeat != 13 {
		t.Errorf("heartbeat line = %d, want default 13", cfg.GPIO.Heartbeat)
	}
	if cfg.Timing.Debounce != 250*time.Millisecond {
		t.Errorf("debounce = %v, want 250ms", cfg.Timing.Debounce)
	}
	if got := cfg.LoopConfig().Brightness; got != 128 {
		t.Errorf("LoopConfig().Brightness = %d, want 128", got)
	}
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("DIGIT_MATRIX_GPIO_CHIP", "gpiochip11")
	t.Setenv("DIGIT_MATRIX_TIMING_HEARTBEAT", "250ms")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.GPIO.Chip != "gpiochip11" {
		t.Errorf("chip = %q, want gpiochip11", cfg.GPIO.Chip)
	}
	if cfg.Timing.Heartbeat != 250*time.Millisecond {
		t.Errorf("heartbeat = %v, want 250ms", cfg.Timing.Heartbeat)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig() with a missing file did not return error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"same buttons", func(c *Config) { c.GPIO.ButtonB = c.GPIO.ButtonA }, true},
		{"wrong led count", func(c *Config) { c.LEDs.Count = 64 }, true},
		{"zero debounce", func(c *Config) { c.Timing.Debounce = 0 }, true},
		{"brightness too high", func(c *Config) { c.Brightness = 256 }, true},
		{"no chip", func(c *Config) { c.GPIO.Chip = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestButtonLines(t *testing.T) {
	lines := DefaultConfig().ButtonLines()
	if lines[5] != types.ButtonA || lines[6] != types.ButtonB || len(lines) != 2 {
		t.Errorf("ButtonLines() = %v, want 5:A 6:B", lines)
	}
}
