// Package preview draws a grid the way it looks on the board, as SVG or PNG.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/fkcurrie/digit-matrix-golang/internal/display"
	"github.com/fkcurrie/digit-matrix-golang/internal/types"
	"github.com/fkcurrie/digit-matrix-golang/pkg/ws2812"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// DefaultPitch is the distance between LED centers in pixels
const DefaultPitch = 32

const (
	boardColor = "#101010"
	unlit      = 0x28
)

// SVG returns an SVG document of the grid. Colors are taken from the words
// the chain would receive, so truncation and clamping show up in the preview.
func SVG(grid *types.Grid, pitch int) []byte {
	size := pitch * types.MatrixSize
	words := display.Frame(grid)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		size, size, size, size)
	fmt.Fprintf(&buf, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`, size, size, boardColor)
	for i, p := range display.Order() {
		g, r, b := ws2812.Decode(words[i])
		fmt.Fprintf(&buf, `<circle cx="%d" cy="%d" r="%d" fill="#%02x%02x%02x"/>`,
			p.Col*pitch+pitch/2, p.Row*pitch+pitch/2, pitch*3/8,
			Visible(r), Visible(g), Visible(b))
	}
	buf.WriteString(`</svg>`)
	return buf.Bytes()
}

// Visible lifts dim channel values so a brightness of 51 reads on a screen
func Visible(v uint8) uint8 {
	if v == 0 {
		return unlit
	}
	return uint8(96 + int(v)*159/255)
}

// Render rasterizes the grid
func Render(grid *types.Grid, pitch int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(SVG(grid, pitch)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse preview svg: %w", err)
	}

	size := pitch * types.MatrixSize
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1)
	return img, nil
}

// WritePNG writes the rasterized grid as PNG
func WritePNG(w io.Writer, grid *types.Grid, pitch int) error {
	img, err := Render(grid, pitch)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
