package model

import (
	"math/rand/v2"
	"time"
)

// RandomSource is the only collaborator the grid needs from its host.
// *rand.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// NewRandomSource returns a deterministic PCG source for the given seed.
// A zero seed draws one from the clock.
func NewRandomSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

func randomPlayerColor(rnd RandomSource) Color {
	return Color(rnd.IntN(3) + 1)
}
