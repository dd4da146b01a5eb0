package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		value, size, want int
	}{
		{-1, 5, 4},
		{5, 5, 0},
		{0, 5, 0},
		{4, 5, 4},
		{2, 5, 2},
		{-1, 1, 0},
		{1, 1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Wrap(tt.value, tt.size), "Wrap(%d, %d)", tt.value, tt.size)
	}
}

func TestWrapNeighborsOfOrigin(t *testing.T) {
	for _, n := range []int{1, 2, 3, 10} {
		// west of (0,0) is (0, n-1): the column steps to -1
		assert.Equal(t, n-1, Wrap(0-1, n), "west column, n=%d", n)
		// north of (0,0) is (n-1, 0): the row steps to -1
		assert.Equal(t, n-1, Wrap(0-1, n), "north row, n=%d", n)
		// east of the last column and south of the last row come back to 0
		assert.Equal(t, 0, Wrap(n-1+1, n), "east/south, n=%d", n)
	}
}

func TestOriginSeesWrappedWestAndNorth(t *testing.T) {
	const n = 6
	g := emptyGrid(t, n)
	// (0, n-1) is the only live neighbor reached by stepping west
	require.NoError(t, g.SetCell(0, n-1, true, Player1))
	// (n-1, 0) is the only live neighbor reached by stepping north
	require.NoError(t, g.SetCell(n-1, 0, true, Player1))
	// a third one elsewhere in the ring: south-east (1,1)
	require.NoError(t, g.SetCell(1, 1, true, Player2))

	// exactly three live neighbors only if both wrapped cells are counted
	assert.Equal(t, Cell{Alive: true, Color: Player1}, Transition(g, 0, 0))

	require.NoError(t, g.ToggleAlive(n-1, 0))
	assert.False(t, Transition(g, 0, 0).Alive, "north neighbor must count")
}

func TestWrapAny(t *testing.T) {
	assert.Equal(t, 3, wrapAny(-7, 5))
	assert.Equal(t, 2, wrapAny(12, 5))
	assert.Equal(t, 0, wrapAny(0, 5))
}
