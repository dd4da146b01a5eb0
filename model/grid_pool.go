package model

import "sync"

// GridPool recycles generation buffers so stepping does not allocate a fresh
// board every tick.
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{}
}

// Get returns a size x size buffer of dead neutral cells
func (p *GridPool) Get(size int) [][]Cell {
	if buf, ok := p.pool.Get().(*[][]Cell); ok && len(*buf) == size {
		return *buf
	}
	return newCells(size)
}

// Put clears a buffer and returns it to the pool
func (p *GridPool) Put(cells [][]Cell) {
	for row := range cells {
		clear(cells[row])
	}
	p.pool.Put(&cells)
}
