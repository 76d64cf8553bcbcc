package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fkcurrie/digit-matrix-golang/internal/clock"
	"github.com/fkcurrie/digit-matrix-golang/internal/config"
	"github.com/fkcurrie/digit-matrix-golang/internal/diag"
	"github.com/fkcurrie/digit-matrix-golang/internal/display"
	"github.com/fkcurrie/digit-matrix-golang/internal/input"
	"github.com/fkcurrie/digit-matrix-golang/internal/types"
	"github.com/fkcurrie/digit-matrix-golang/pkg/gpio"
	"github.com/fkcurrie/digit-matrix-golang/pkg/ws2812"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	log.Println("Starting...")
	if err := run(*configPath); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	leds, err := ws2812.OpenSPI(cfg.LEDs.SPIPort, cfg.LEDs.SPISpeedHz)
	if err != nil {
		return err
	}
	defer leds.Close()
	transport := ws2812.NewTransport(leds, cfg.LEDs.Count)

	heartbeat, err := gpio.NewPin(cfg.GPIO.Chip, cfg.GPIO.Heartbeat)
	if err != nil {
		return err
	}
	defer heartbeat.Close()

	var counter input.Counter
	queue := diag.NewQueue(cfg.Diag.QueueSize, nil)
	debouncer := input.NewDebouncer(cfg.Timing.Debounce, &counter, queue)

	buttons, err := gpio.WatchButtons(cfg.GPIO.Chip,
		[]int{cfg.GPIO.ButtonA, cfg.GPIO.ButtonB},
		debouncer.LineHandler(cfg.ButtonLines()))
	if err != nil {
		return err
	}
	defer buttons.Close()

	renderer := display.NewRenderer(cfg.LoopConfig(), clock.Monotonic{}, heartbeat, &counter, transport.Words())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return transport.Run(ctx) })
	g.Go(func() error { return queue.Run(ctx) })
	g.Go(func() error { return renderer.Start(ctx) })

	err = g.Wait()
	log.Println("Shutting down...")

	blank := display.Frame(&types.Grid{})
	if werr := transport.Write(blank[:]); werr != nil {
		log.Printf("Failed to blank matrix: %v", werr)
	}
	for _, b := range []types.ButtonID{types.ButtonA, types.ButtonB} {
		s := debouncer.Stats(b)
		log.Printf("Button %s: %d accepted, %d suppressed", b, s.Accepted, s.Suppressed)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
