// Package rules holds the per-cell game rules: classic Conway liveness and the
// color arbitration that decides which player owns a surviving or newborn cell.
package rules

// NumColors is the number of color ids a tally tracks: neutral plus three players.
const NumColors = 4

// ApplyConwayRules reports whether a cell is alive next generation.
// Color plays no part: survive on 2 or 3 live neighbors, birth on exactly 3.
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

/*
DominantColor picks the owner color of a cell for the next generation.

With exactly two live neighbors the cell keeps its own color. With exactly
three, the color holding a strict plurality wins, ties going to the lowest
color id; when all three neighbors carry distinct colors the result is
neutral (0). Any other count yields 0, the cell is dead next generation.
*/
func DominantColor(count int, own uint8, tally [NumColors]int) uint8 {
	switch count {
	case 2:
		return own
	case 3:
		maxTally := 0
		for _, n := range tally {
			maxTally = max(maxTally, n)
		}
		if maxTally <= 1 {
			return 0
		}
		for c, n := range tally {
			if n == maxTally {
				return uint8(c)
			}
		}
	}
	return 0
}
