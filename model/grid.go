package model

import (
	"crypto/md5"
	"fmt"

	"github.com/pkg/errors"
)

// Grid is the square, toroidal game board. It owns the current generation.
//
// A Grid is not safe for concurrent use; the host serializes access to it.
type Grid struct {
	size  int
	cells [][]Cell
	rnd   RandomSource
}

// NewGrid creates a size x size grid of dead neutral cells and randomizes it.
// A nil rnd falls back to a clock-seeded source.
func NewGrid(size int, rnd RandomSource) (*Grid, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "[NewGrid] size must be positive, got %d", size)
	}
	if rnd == nil {
		rnd = NewRandomSource(0)
	}
	g := &Grid{
		size:  size,
		cells: newCells(size),
		rnd:   rnd,
	}
	g.Randomize()
	return g, nil
}

// Size returns the side length of the grid
func (g *Grid) Size() int {
	return g.size
}

func (g *Grid) checkBounds(op string, row, col int) error {
	if row < 0 || row >= g.size || col < 0 || col >= g.size {
		return errors.Wrapf(ErrIndexOutOfRange, "[%s] (%d,%d) outside %dx%d grid", op, row, col, g.size, g.size)
	}
	return nil
}

// CellAt returns the cell at (row, col)
func (g *Grid) CellAt(row, col int) (Cell, error) {
	if err := g.checkBounds("CellAt", row, col); err != nil {
		return Cell{}, err
	}
	return g.cells[row][col], nil
}

// SetCell overwrites both fields of the cell at (row, col)
func (g *Grid) SetCell(row, col int, alive bool, color Color) error {
	if err := g.checkBounds("SetCell", row, col); err != nil {
		return err
	}
	if !color.Valid() {
		return errors.Wrapf(ErrInvalidArgument, "[SetCell] unknown color %d", color)
	}
	g.cells[row][col] = Cell{Alive: alive, Color: color}
	return nil
}

// ToggleAlive flips the alive flag of the cell at (row, col), keeping its color
func (g *Grid) ToggleAlive(row, col int) error {
	if err := g.checkBounds("ToggleAlive", row, col); err != nil {
		return err
	}
	g.cells[row][col].Alive = !g.cells[row][col].Alive
	return nil
}

// Randomize gives every cell a random alive flag and a random player color.
// Dead cells get a color too; it is what they present once revived.
func (g *Grid) Randomize() {
	for row := range g.cells {
		for col := range g.cells[row] {
			g.cells[row][col] = Cell{
				Alive: g.rnd.IntN(2) == 1,
				Color: randomPlayerColor(g.rnd),
			}
		}
	}
}

// Clean kills every cell and reshuffles the colors future births will draw from.
func (g *Grid) Clean() {
	for row := range g.cells {
		for col := range g.cells[row] {
			g.cells[row][col] = Cell{Color: randomPlayerColor(g.rnd)}
		}
	}
}

// Resize discards the board and starts over with a fresh random newSize x newSize grid
func (g *Grid) Resize(newSize int) error {
	if newSize <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "[Resize] size must be positive, got %d", newSize)
	}
	g.size = newSize
	g.cells = newCells(newSize)
	g.Randomize()
	return nil
}

// replace swaps in a fully built generation and hands back the old buffer.
func (g *Grid) replace(next [][]Cell) [][]Cell {
	old := g.cells
	g.cells = next
	return old
}

// Restore loads a snapshot into the grid, replacing its size and contents.
// The snapshot must be square, non-empty and carry only known colors.
func (g *Grid) Restore(snap Snapshot) error {
	size := len(snap)
	if size == 0 {
		return errors.Wrap(ErrInvalidArgument, "[Restore] empty snapshot")
	}
	cells := newCells(size)
	for row := range snap {
		if len(snap[row]) != size {
			return errors.Wrapf(ErrInvalidArgument, "[Restore] row %d has %d cells, want %d", row, len(snap[row]), size)
		}
		for col, c := range snap[row] {
			if !c.Color.Valid() {
				return errors.Wrapf(ErrInvalidArgument, "[Restore] unknown color %d at (%d,%d)", c.Color, row, col)
			}
			cells[row][col] = c
		}
	}
	g.size = size
	g.cells = cells
	return nil
}

// Snapshot returns a deep copy of the current generation
func (g *Grid) Snapshot() Snapshot {
	snap := make(Snapshot, g.size)
	for row := range g.cells {
		snap[row] = make([]Cell, g.size)
		copy(snap[row], g.cells[row])
	}
	return snap
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for row := range g.cells {
		for _, c := range g.cells[row] {
			if c.Alive {
				count++
			}
		}
	}
	return
}

// Population counts living cells per color; index 1..3 is a player's score.
func (g *Grid) Population() (pop [NumColors]int) {
	for row := range g.cells {
		for _, c := range g.cells[row] {
			if c.Alive {
				pop[c.Color]++
			}
		}
	}
	return
}

// Hash returns an MD5 hash of the current grid state, colors included
func (g *Grid) Hash() string {
	h := md5.New()
	for row := range g.cells {
		for _, c := range g.cells[row] {
			alive := byte(0)
			if c.Alive {
				alive = 1
			}
			h.Write([]byte{alive, byte(c.Color)})
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// InjectRandomLife revives count random cells, keeping their colors
func (g *Grid) InjectRandomLife(count int) {
	for i := 0; i < count; i++ {
		g.cells[g.rnd.IntN(g.size)][g.rnd.IntN(g.size)].Alive = true
	}
}
