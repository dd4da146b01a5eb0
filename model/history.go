package model

// historySize is how many recent grid hashes are kept for cycle detection.
const historySize = 5

// History remembers recent grid hashes to spot still lifes and short cycles.
type History struct {
	hashes []string
}

// Observe adds a hash to the history, keeping only the most recent ones
func (h *History) Observe(hash string) {
	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// IsStagnant reports whether hash repeats one of the last three observed states.
func (h *History) IsStagnant(hash string) bool {
	if len(h.hashes) < 3 {
		return false
	}
	for i := 1; i <= 3; i++ {
		if h.hashes[len(h.hashes)-i] == hash {
			return true
		}
	}
	return false
}

// Reset forgets every observed state
func (h *History) Reset() {
	h.hashes = nil
}
