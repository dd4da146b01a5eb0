package model

import "github.com/sheikhrachel/gol-arena/rules"

// Color identifies the owner of a cell: neutral or one of the three players.
type Color uint8

const (
	Neutral Color = iota
	Player1
	Player2
	Player3
)

// NumColors is the number of distinct color ids, neutral included.
const NumColors = rules.NumColors

// Valid reports whether c is one of the known color ids.
func (c Color) Valid() bool {
	return c < NumColors
}

// Cell is a single grid slot. Cells are stored by value, so no two
// coordinates ever share state.
type Cell struct {
	Alive bool  `json:"alive"`
	Color Color `json:"color"`
}

// Snapshot is a deep, row-major copy of a grid.
type Snapshot [][]Cell

func newCells(size int) [][]Cell {
	cells := make([][]Cell, size)
	for i := range cells {
		cells[i] = make([]Cell, size)
	}
	return cells
}
