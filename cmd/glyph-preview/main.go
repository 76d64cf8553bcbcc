package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fkcurrie/digit-matrix-golang/internal/display"
	"github.com/fkcurrie/digit-matrix-golang/internal/glyph"
	"github.com/fkcurrie/digit-matrix-golang/internal/preview"
	"github.com/fkcurrie/digit-matrix-golang/internal/types"
)

func main() {
	outDir := flag.String("out", ".", "Directory to write digit-N.png files to")
	pitch := flag.Int("pitch", preview.DefaultPitch, "Pixels between LED centers")
	brightness := flag.Int("brightness", display.DefaultBrightness, "Lit pixel brightness (0-255)")
	flag.Parse()

	if *brightness < 0 || *brightness > 255 {
		log.Fatalf("brightness must be between 0 and 255")
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create %s: %v", *outDir, err)
	}

	c := display.NewCompositor(uint8(*brightness))
	for d := 0; d < glyph.NumDigits; d++ {
		grid := c.Compose(d)
		path := filepath.Join(*outDir, fmt.Sprintf("digit-%d.png", d))
		if err := writePreview(path, &grid, *pitch); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		log.Printf("Wrote %s", path)
	}
}

func writePreview(path string, grid *types.Grid, pitch int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := preview.WritePNG(f, grid, pitch); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
