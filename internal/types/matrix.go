package types

import "math"

// MatrixSize is the edge length of the square LED matrix
const MatrixSize = 5

// NumCells is the number of LEDs on the matrix
const NumCells = MatrixSize * MatrixSize

// Color holds three normalized intensity channels in [0, 1]
type Color struct {
	Red   float64
	Green float64
	Blue  float64
}

// Off is the color of an unlit LED
var Off = Color{}

// Clamp returns the color with every channel limited to [0, 1]
func (c Color) Clamp() Color {
	return Color{
		Red:   clamp01(c.Red),
		Green: clamp01(c.Green),
		Blue:  clamp01(c.Blue),
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Grid is a 5x5 row-major color buffer, rows top-to-bottom and columns left-to-right
type Grid [NumCells]Color

// At returns the color at the given row and column
func (g *Grid) At(row, col int) Color {
	return g[row*MatrixSize+col]
}

// Set sets the color at the given row and column
func (g *Grid) Set(row, col int, c Color) {
	g[row*MatrixSize+col] = c
}
