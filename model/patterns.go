package model

import "github.com/pkg/errors"

var (
	gliderPattern = [][]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	}
	blinkerPattern = [][]bool{
		{true, true, true},
	}
	blockPattern = [][]bool{
		{true, true},
		{true, true},
	}
)

// Patterns maps the names accepted by Place to their shapes
var Patterns = map[string][][]bool{
	"glider":  gliderPattern,
	"blinker": blinkerPattern,
	"block":   blockPattern,
}

// Place stamps a named pattern with its top-left corner at (row, col).
// The pattern wraps around the board edges; cells inside the pattern's box
// are overwritten, dead ones included.
func (g *Grid) Place(name string, row, col int, color Color) error {
	pattern, ok := Patterns[name]
	if !ok {
		return errors.Wrapf(ErrInvalidArgument, "[Place] unknown pattern %q", name)
	}
	if err := g.checkBounds("Place", row, col); err != nil {
		return err
	}
	if !color.Valid() {
		return errors.Wrapf(ErrInvalidArgument, "[Place] unknown color %d", color)
	}

	for dy, line := range pattern {
		for dx, alive := range line {
			r, c := wrapAny(row+dy, g.size), wrapAny(col+dx, g.size)
			g.cells[r][c] = Cell{Alive: alive, Color: color}
		}
	}
	return nil
}
