// Package glyph holds the 5x5 bitmaps for the decimal digits.
package glyph

import "github.com/fkcurrie/digit-matrix-golang/internal/types"

// Bitmap is a 5x5 on/off pattern indexed [row][col]
type Bitmap [types.MatrixSize][types.MatrixSize]bool

// NumDigits is the number of glyphs in the table
const NumDigits = 10

const (
	o = false
	x = true
)

var table = [NumDigits]Bitmap{
	0: {
		{o, x, x, x, o},
		{o, x, o, x, o},
		{o, x, o, x, o},
		{o, x, o, x, o},
		{o, x, x, x, o},
	},
	1: {
		{o, o, x, o, o},
		{o, x, x, o, o},
		{o, o, x, o, o},
		{o, o, x, o, o},
		{o, x, x, x, o},
	},
	2: {
		{o, x, x, x, o},
		{o, o, o, x, o},
		{o, x, x, x, o},
		{o, x, o, o, o},
		{o, x, x, x, o},
	},
	3: {
		{o, x, x, x, o},
		{o, o, o, x, o},
		{o, o, x, x, o},
		{o, o, o, x, o},
		{o, x, x, x, o},
	},
	4: {
		{o, x, o, x, o},
		{o, x, o, x, o},
		{o, x, x, x, o},
		{o, o, o, x, o},
		{o, o, o, x, o},
	},
	5: {
		{o, x, x, x, o},
		{o, x, o, o, o},
		{o, x, x, x, o},
		{o, o, o, x, o},
		{o, x, x, x, o},
	},
	6: {
		{o, x, x, x, o},
		{o, x, o, o, o},
		{o, x, x, x, o},
		{o, x, o, x, o},
		{o, x, x, x, o},
	},
	7: {
		{o, x, x, x, o},
		{o, x, o, x, o},
		{o, o, o, x, o},
		{o, o, o, x, o},
		{o, o, o, x, o},
	},
	8: {
		{o, x, x, x, o},
		{o, x, o, x, o},
		{o, x, x, x, o},
		{o, x, o, x, o},
		{o, x, x, x, o},
	},
	9: {
		{o, x, x, x, o},
		{o, x, o, x, o},
		{o, x, x, x, o},
		{o, o, o, x, o},
		{o, o, o, x, o},
	},
}

// Digit returns the bitmap for d. It panics if d is not in [0, 9].
func Digit(d int) Bitmap {
	if d < 0 || d >= NumDigits {
		panic("glyph: digit out of range")
	}
	return table[d]
}

// Lit returns the number of lit pixels in the bitmap
func (b Bitmap) Lit() int {
	n := 0
	for _, row := range b {
		for _, on := range row {
			if on {
				n++
			}
		}
	}
	return n
}
