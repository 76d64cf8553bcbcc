package display

import (
	"context"
	"testing"
	"time"

	"github.com/fkcurrie/digit-matrix-golang/internal/types"
	"github.com/fkcurrie/digit-matrix-golang/pkg/ws2812"
)

func TestOrderIsSerpentine(t *testing.T) {
	want := []Position{
		{4, 4}, {4, 3}, {4, 2}, {4, 1}, {4, 0},
		{3, 0}, {3, 1}, {3, 2}, {3, 3}, {3, 4},
		{2, 4}, {2, 3}, {2, 2}, {2, 1}, {2, 0},
		{1, 0}, {1, 1}, {1, 2}, {1, 3}, {1, 4},
		{0, 4}, {0, 3}, {0, 2}, {0, 1}, {0, 0},
	}

	got := Order()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Order()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPhysicalIndexIsBijective(t *testing.T) {
	seen := make(map[int]bool)
	for row := 0; row < types.MatrixSize; row++ {
		for col := 0; col < types.MatrixSize; col++ {
			i := PhysicalIndex(row, col)
			if i < 0 || i >= types.NumCells {
				t.Fatalf("PhysicalIndex(%d, %d) = %d, out of range", row, col, i)
			}
			if seen[i] {
				t.Fatalf("PhysicalIndex(%d, %d) = %d, already used", row, col, i)
			}
			seen[i] = true

			r, c := Cell(i)
			if r != row || c != col {
				t.Errorf("Cell(%d) = (%d, %d), want (%d, %d)", i, r, c, row, col)
			}
		}
	}
}

func TestRenderEmitsChainOrder(t *testing.T) {
	// give every cell a distinct blue level so the stream identifies the cell
	var grid types.Grid
	for row := 0; row < types.MatrixSize; row++ {
		for col := 0; col < types.MatrixSize; col++ {
			grid.Set(row, col, types.Color{Blue: float64(row*types.MatrixSize+col+1) / 255.0})
		}
	}

	out := make(chan uint32, types.NumCells)
	if err := Render(context.Background(), &grid, out); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	close(out)

	var got []uint32
	for w := range out {
		got = append(got, w)
	}
	if len(got) != types.NumCells {
		t.Fatalf("Render() emitted %d words, want %d", len(got), types.NumCells)
	}
	for i, p := range Order() {
		_, _, b := ws2812.Decode(got[i])
		if want := uint8(p.Row*types.MatrixSize + p.Col + 1); b != want {
			t.Errorf("word %d carries cell %d, want cell %d (%+v)", i, b, want, p)
		}
	}
}

func TestRenderPacksRedInMiddleByte(t *testing.T) {
	grid := NewCompositor(DefaultBrightness).Compose(1)
	words := Frame(&grid)

	// digit 1 lights (0, 2) and leaves (0, 0) dark
	if w := words[PhysicalIndex(0, 2)]; w != 0x003300 {
		t.Errorf("lit word = %#06x, want 0x003300", w)
	}
	if w := words[PhysicalIndex(0, 0)]; w != 0 {
		t.Errorf("dark word = %#06x, want 0", w)
	}
}

func TestRenderClampsOutOfRange(t *testing.T) {
	var grid types.Grid
	grid.Set(4, 4, types.Color{Red: 3, Green: -1, Blue: 0.5})
	words := Frame(&grid)
	if words[0] != 0x00ff7f {
		t.Errorf("clamped word = %#06x, want 0x00ff7f", words[0])
	}
}

func TestRenderBlocksUntilAccepted(t *testing.T) {
	var grid types.Grid
	out := make(chan uint32)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Render(ctx, &grid, out) }()

	for i := 0; i < 3; i++ {
		<-out
	}
	select {
	case err := <-done:
		t.Fatalf("Render() returned early: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}
