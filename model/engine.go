package model

import (
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/gol-arena/rules"
)

// Engine advances a Grid one generation at a time.
type Engine struct {
	workers int
	pool    *GridPool
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithWorkers splits each generation into row bands computed concurrently.
// Values below 2 keep the sequential pass.
func WithWorkers(n int) EngineOption {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithPool recycles generation buffers through the given pool
func WithPool(pool *GridPool) EngineOption {
	return func(e *Engine) {
		e.pool = pool
	}
}

// NewEngine creates an Engine
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{workers: 1}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

/*
Step computes the next generation of g into a separate buffer and commits it
with a single swap. The grid being read is never written during the pass.

Step is a pure function of the grid contents: it holds no state between calls
and draws no random numbers.
*/
func (e *Engine) Step(g *Grid) Snapshot {
	var next [][]Cell
	if e.pool != nil {
		next = e.pool.Get(g.size)
	} else {
		next = newCells(g.size)
	}

	if e.workers > 1 {
		e.stepParallel(g, next)
	} else {
		stepRows(g, next, 0, g.size)
	}

	old := g.replace(next)
	if e.pool != nil {
		e.pool.Put(old)
	}
	return g.Snapshot()
}

func (e *Engine) stepParallel(g *Grid, next [][]Cell) {
	var (
		eg            errgroup.Group
		rowsPerWorker = (g.size + e.workers - 1) / e.workers // Ceiling division
	)

	for i := range e.workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.size)
		)
		if startRow >= g.size {
			break
		}

		// bands write disjoint rows of next and only read g
		eg.Go(func() error {
			stepRows(g, next, startRow, endRow)
			return nil
		})
	}

	// bands cannot fail, Wait only joins them and always returns nil
	_ = eg.Wait()
}

func stepRows(g *Grid, next [][]Cell, startRow, endRow int) {
	for row := startRow; row < endRow; row++ {
		for col := 0; col < g.size; col++ {
			next[row][col] = Transition(g, row, col)
		}
	}
}

// Transition returns what the cell at (row, col) becomes in the next generation.
// Coordinates must be inside the grid.
func Transition(g *Grid, row, col int) Cell {
	var (
		cur   = g.cells
		up    = Wrap(row-1, g.size)
		down  = Wrap(row+1, g.size)
		left  = Wrap(col-1, g.size)
		right = Wrap(col+1, g.size)
		self  = cur[row][col]
	)

	neighbors := [8]Cell{
		cur[row][left],   // W
		cur[up][left],    // NW
		cur[up][col],     // N
		cur[up][right],   // NE
		cur[row][right],  // E
		cur[down][right], // SE
		cur[down][col],   // S
		cur[down][left],  // SW
	}

	var (
		count int
		tally [NumColors]int
	)
	for _, n := range neighbors {
		if n.Alive {
			count++
			tally[n.Color]++
		}
	}

	return Cell{
		Alive: rules.ApplyConwayRules(count, self.Alive),
		Color: Color(rules.DominantColor(count, uint8(self.Color), tally)),
	}
}
