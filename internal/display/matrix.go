package display

import (
	"context"

	"github.com/fkcurrie/digit-matrix-golang/internal/types"
	"github.com/fkcurrie/digit-matrix-golang/pkg/ws2812"
)

// Position is a logical cell on the grid
type Position struct {
	Row int
	Col int
}

// chain lists the cells in the order the LEDs are wired
var chain [types.NumCells]Position

func init() {
	for i := range chain {
		row, col := Cell(i)
		chain[i] = Position{Row: row, Col: col}
	}
}

// PhysicalIndex returns the position of a cell along the LED chain.
// The chain starts at the bottom right corner and zig-zags upwards:
// even rows run right to left, odd rows left to right.
func PhysicalIndex(row, col int) int {
	base := (types.MatrixSize - 1 - row) * types.MatrixSize
	if row%2 == 0 {
		return base + types.MatrixSize - 1 - col
	}
	return base + col
}

// Cell is the inverse of PhysicalIndex
func Cell(index int) (row, col int) {
	row = types.MatrixSize - 1 - index/types.MatrixSize
	step := index % types.MatrixSize
	if row%2 == 0 {
		return row, types.MatrixSize - 1 - step
	}
	return row, step
}

// Order returns the cells in chain order
func Order() [types.NumCells]Position {
	return chain
}

// Frame encodes the grid into GRB words in chain order
func Frame(grid *types.Grid) [types.NumCells]uint32 {
	var words [types.NumCells]uint32
	for i, p := range chain {
		c := grid.At(p.Row, p.Col).Clamp()
		words[i] = ws2812.Encode(c.Green, c.Red, c.Blue)
	}
	return words
}

// Render pushes the grid onto out, one word per LED in chain order.
// Each send blocks until the transport takes it; only ctx ends the wait.
func Render(ctx context.Context, grid *types.Grid, out chan<- uint32) error {
	words := Frame(grid)
	for _, w := range words {
		select {
		case out <- w:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
