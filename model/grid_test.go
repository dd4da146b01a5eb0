package model

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGrid(t *testing.T, size int) *Grid {
	t.Helper()
	g, err := NewGrid(size, NewRandomSource(42))
	require.NoError(t, err)
	return g
}

// emptyGrid returns a grid with every cell dead and neutral
func emptyGrid(t *testing.T, size int) *Grid {
	t.Helper()
	g := newTestGrid(t, size)
	g.cells = newCells(size)
	return g
}

func TestNewGridRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1, -50} {
		_, err := NewGrid(size, NewRandomSource(1))
		assert.True(t, errors.Is(err, ErrInvalidArgument), "size %d: %v", size, err)
	}
}

func TestNewGridIsRandomized(t *testing.T) {
	g := newTestGrid(t, 20)
	require.Equal(t, 20, g.Size())
	snap := g.Snapshot()
	require.Len(t, snap, 20)
	for _, row := range snap {
		require.Len(t, row, 20)
		for _, c := range row {
			assert.Contains(t, []Color{Player1, Player2, Player3}, c.Color)
		}
	}
	living := g.CountLivingCells()
	assert.Greater(t, living, 0)
	assert.Less(t, living, 400)
}

func TestBounds(t *testing.T) {
	for _, size := range []int{1, 2, 7} {
		g := newTestGrid(t, size)
		before := g.Snapshot()
		for _, rc := range [][2]int{{-1, 0}, {0, -1}, {size, 0}, {0, size}, {size, size}, {-1, -1}} {
			_, err := g.CellAt(rc[0], rc[1])
			assert.True(t, errors.Is(err, ErrIndexOutOfRange), "CellAt%v", rc)
			err = g.SetCell(rc[0], rc[1], true, Player1)
			assert.True(t, errors.Is(err, ErrIndexOutOfRange), "SetCell%v", rc)
			err = g.ToggleAlive(rc[0], rc[1])
			assert.True(t, errors.Is(err, ErrIndexOutOfRange), "ToggleAlive%v", rc)
		}
		assert.Equal(t, before, g.Snapshot())
	}
}

func TestSetCellAndToggle(t *testing.T) {
	g := newTestGrid(t, 4)
	require.NoError(t, g.SetCell(1, 2, true, Player3))
	c, err := g.CellAt(1, 2)
	require.NoError(t, err)
	assert.Equal(t, Cell{Alive: true, Color: Player3}, c)

	require.NoError(t, g.ToggleAlive(1, 2))
	c, _ = g.CellAt(1, 2)
	assert.Equal(t, Cell{Alive: false, Color: Player3}, c)

	err = g.SetCell(1, 2, true, Color(4))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	c, _ = g.CellAt(1, 2)
	assert.Equal(t, Cell{Alive: false, Color: Player3}, c)
}

func TestCellsAreNotAliased(t *testing.T) {
	g := emptyGrid(t, 3)
	require.NoError(t, g.SetCell(0, 0, true, Player2))
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if row == 0 && col == 0 {
				continue
			}
			c, _ := g.CellAt(row, col)
			assert.Equal(t, Cell{}, c, "(%d,%d)", row, col)
		}
	}

	snap := g.Snapshot()
	snap[0][0].Alive = false
	c, _ := g.CellAt(0, 0)
	assert.True(t, c.Alive, "snapshot must not alias the grid")
}

func TestRandomizeColorDistribution(t *testing.T) {
	g := newTestGrid(t, 30)
	var counts [NumColors]int
	for i := 0; i < 20; i++ {
		g.Randomize()
		for _, row := range g.Snapshot() {
			for _, c := range row {
				counts[c.Color]++
			}
		}
	}
	total := 20 * 30 * 30
	assert.Zero(t, counts[Neutral])
	for _, c := range []Color{Player1, Player2, Player3} {
		share := float64(counts[c]) / float64(total)
		assert.InDelta(t, 1.0/3, share, 0.02, "color %d", c)
	}
}

func TestClean(t *testing.T) {
	g := newTestGrid(t, 10)
	g.Clean()
	assert.Zero(t, g.CountLivingCells())
	for _, row := range g.Snapshot() {
		for _, c := range row {
			assert.False(t, c.Alive)
			assert.Contains(t, []Color{Player1, Player2, Player3}, c.Color)
		}
	}
}

func TestResize(t *testing.T) {
	g := newTestGrid(t, 5)
	for _, n := range []int{1, 3, 5, 12} {
		require.NoError(t, g.Resize(n))
		assert.Equal(t, n, g.Size())
		snap := g.Snapshot()
		require.Len(t, snap, n)
		for _, row := range snap {
			require.Len(t, row, n)
			for _, c := range row {
				assert.True(t, c.Color >= Player1 && c.Color <= Player3)
			}
		}
	}

	before := g.Snapshot()
	assert.True(t, errors.Is(g.Resize(0), ErrInvalidArgument))
	assert.True(t, errors.Is(g.Resize(-3), ErrInvalidArgument))
	assert.Equal(t, before, g.Snapshot())
}

func TestRestore(t *testing.T) {
	g := newTestGrid(t, 4)
	other := newTestGrid(t, 6)
	other.Randomize()

	require.NoError(t, g.Restore(other.Snapshot()))
	assert.Equal(t, 6, g.Size())
	assert.Equal(t, other.Snapshot(), g.Snapshot())

	before := g.Snapshot()
	assert.True(t, errors.Is(g.Restore(Snapshot{}), ErrInvalidArgument))
	assert.True(t, errors.Is(g.Restore(Snapshot{{{}}, {{}}}), ErrInvalidArgument))
	assert.True(t, errors.Is(g.Restore(Snapshot{{{Alive: true, Color: 9}}}), ErrInvalidArgument))
	assert.Equal(t, before, g.Snapshot())
}

func TestPopulationAndHash(t *testing.T) {
	g := emptyGrid(t, 4)
	require.NoError(t, g.SetCell(0, 0, true, Player1))
	require.NoError(t, g.SetCell(0, 1, true, Player1))
	require.NoError(t, g.SetCell(2, 2, true, Player3))
	require.NoError(t, g.SetCell(3, 3, false, Player2))

	assert.Equal(t, [NumColors]int{0, 2, 0, 1}, g.Population())
	assert.Equal(t, 3, g.CountLivingCells())

	hash := g.Hash()
	require.NoError(t, g.SetCell(2, 2, true, Player2))
	assert.NotEqual(t, hash, g.Hash(), "hash must include colors")
}

func TestInjectRandomLife(t *testing.T) {
	g := newTestGrid(t, 8)
	g.Clean()
	g.InjectRandomLife(5)
	living := g.CountLivingCells()
	assert.Greater(t, living, 0)
	assert.LessOrEqual(t, living, 5)
}

func TestPlace(t *testing.T) {
	g := emptyGrid(t, 5)
	require.NoError(t, g.Place("block", 4, 4, Player2))
	for _, rc := range [][2]int{{4, 4}, {4, 0}, {0, 4}, {0, 0}} {
		c, _ := g.CellAt(rc[0], rc[1])
		assert.Equal(t, Cell{Alive: true, Color: Player2}, c, "%v", rc)
	}
	assert.Equal(t, 4, g.CountLivingCells())

	assert.True(t, errors.Is(g.Place("spaceship", 0, 0, Player1), ErrInvalidArgument))
	assert.True(t, errors.Is(g.Place("glider", 5, 0, Player1), ErrIndexOutOfRange))
	assert.True(t, errors.Is(g.Place("glider", 0, 0, Color(7)), ErrInvalidArgument))
}
