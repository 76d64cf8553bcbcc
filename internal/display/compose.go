package display

import (
	"fmt"

	"github.com/fkcurrie/digit-matrix-golang/internal/glyph"
	"github.com/fkcurrie/digit-matrix-golang/internal/types"
)

// DefaultBrightness is the red intensity of a lit pixel, out of 255
const DefaultBrightness = 51

// OnColor returns the color of a lit pixel for the given brightness
func OnColor(brightness uint8) types.Color {
	return types.Color{Red: float64(brightness) / 255.0}
}

// Compositor turns a digit into a grid using the glyph table
type Compositor struct {
	on types.Color
}

// NewCompositor creates a compositor lighting pixels at the given brightness
func NewCompositor(brightness uint8) *Compositor {
	return &Compositor{on: OnColor(brightness)}
}

// Compose builds the grid for digit. A digit outside [0, 9] is a programming
// error and panics.
func (c *Compositor) Compose(digit int) types.Grid {
	if digit < 0 || digit >= glyph.NumDigits {
		panic(fmt.Sprintf("display: digit %d out of range", digit))
	}

	bitmap := glyph.Digit(digit)
	var grid types.Grid
	for row := 0; row < types.MatrixSize; row++ {
		for col := 0; col < types.MatrixSize; col++ {
			if bitmap[row][col] {
				grid.Set(row, col, c.on)
			} else {
				grid.Set(row, col, types.Off)
			}
		}
	}
	return grid
}
