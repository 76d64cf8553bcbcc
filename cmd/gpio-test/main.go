package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fkcurrie/digit-matrix-golang/internal/config"
	"github.com/fkcurrie/digit-matrix-golang/internal/input"
	"github.com/fkcurrie/digit-matrix-golang/internal/types"
	"github.com/fkcurrie/digit-matrix-golang/pkg/gpio"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	period := flag.Duration("period", time.Second, "Heartbeat toggle period")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up signal handler for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Println("Starting GPIO test...")

	pin, err := gpio.NewPin(cfg.GPIO.Chip, cfg.GPIO.Heartbeat)
	if err != nil {
		log.Fatalf("Failed to request heartbeat line: %v", err)
	}
	defer pin.Close()

	// Raw edges are logged here; the debouncer only counts them
	var counter input.Counter
	debouncer := input.NewDebouncer(cfg.Timing.Debounce, &counter, nil)
	lines := cfg.ButtonLines()
	buttons, err := gpio.WatchButtons(cfg.GPIO.Chip, []int{cfg.GPIO.ButtonA, cfg.GPIO.ButtonB},
		func(offset int, ts time.Duration) {
			b, ok := lines[offset]
			if !ok {
				return
			}
			accepted := debouncer.HandleEdge(types.Edge{Button: b, Timestamp: ts})
			log.Printf("Button %s edge on line %d at %v, accepted=%v, digit=%d", b, offset, ts, accepted, counter.Load())
		})
	if err != nil {
		log.Fatalf("Failed to watch buttons: %v", err)
	}
	defer buttons.Close()

	log.Println("Successfully requested GPIO lines")

	ticker := time.NewTicker(*period)
	defer ticker.Stop()
	value := 0
	for {
		select {
		case <-sigChan:
			log.Println("Shutting down...")
			return
		case <-ticker.C:
			value ^= 1
			if err := pin.SetValue(value); err != nil {
				log.Printf("Failed to set value: %v", err)
				continue
			}
			log.Printf("Set heartbeat line to %d", value)
		}
	}
}
