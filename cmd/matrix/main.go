package main

import (
	"flag"
	"log"
	"time"

	"github.com/fkcurrie/digit-matrix-golang/internal/config"
	"github.com/fkcurrie/digit-matrix-golang/internal/display"
	"github.com/fkcurrie/digit-matrix-golang/internal/types"
	"github.com/fkcurrie/digit-matrix-golang/pkg/ws2812"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	hold := flag.Duration("hold", 2*time.Second, "how long each pattern is shown")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Failed to load config from %s: %v", *configPath, err)
		log.Printf("Using default configuration")
		cfg = config.DefaultConfig()
	}

	leds, err := ws2812.OpenSPI(cfg.LEDs.SPIPort, cfg.LEDs.SPISpeedHz)
	if err != nil {
		log.Fatalf("Failed to open LED chain: %v", err)
	}
	defer leds.Close()
	transport := ws2812.NewTransport(leds, cfg.LEDs.Count)

	level := float64(cfg.Brightness) / 255.0
	show := func(name string, grid *types.Grid) {
		log.Println(name)
		words := display.Frame(grid)
		if err := transport.Write(words[:]); err != nil {
			log.Fatalf("Failed to show pattern: %v", err)
		}
	}

	fills := []struct {
		name  string
		color types.Color
	}{
		{"Setting all pixels to red", types.Color{Red: level}},
		{"Setting all pixels to green", types.Color{Green: level}},
		{"Setting all pixels to blue", types.Color{Blue: level}},
	}
	for _, f := range fills {
		var grid types.Grid
		for i := range grid {
			grid[i] = f.color
		}
		show(f.name, &grid)
		time.Sleep(*hold)
	}

	// Light the chain one LED at a time to check the serpentine wiring
	log.Println("Walking the chain")
	for i, p := range display.Order() {
		var grid types.Grid
		grid.Set(p.Row, p.Col, types.Color{Red: level, Green: level, Blue: level})
		words := display.Frame(&grid)
		if err := transport.Write(words[:]); err != nil {
			log.Fatalf("Failed to show LED %d: %v", i, err)
		}
		time.Sleep(*hold / types.NumCells)
	}

	show("Clearing matrix", &types.Grid{})
	log.Printf("Test completed successfully, %d frames written", transport.Frames())
}
