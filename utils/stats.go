package utils

import (
	"time"

	"github.com/sheikhrachel/gol-arena/rules"
)

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	ColorAverages        [rules.NumColors]float64
	TotalGenerations     int
	StartTime            time.Time
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update folds one generation's living cells per color into the moving averages
func (s *Stats) Update(generation int, population [rules.NumColors]int, duration time.Duration) {
	s.TotalGenerations = generation
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	total := 0
	for _, n := range population {
		total += n
	}
	first := s.AveragePopulation == 0
	s.AveragePopulation = movingAverage(s.AveragePopulation, total, first)
	for c, n := range population {
		s.ColorAverages[c] = movingAverage(s.ColorAverages[c], n, first)
	}
}

// Leader returns the player color with the highest average population, or 0
// when no player is ahead.
func (s *Stats) Leader() int {
	leader, best := 0, 0.0
	for c := 1; c < rules.NumColors; c++ {
		if s.ColorAverages[c] > best {
			leader, best = c, s.ColorAverages[c]
		}
	}
	return leader
}

func movingAverage(avg float64, sample int, first bool) float64 {
	if first {
		return float64(sample)
	}
	return avg*0.9 + float64(sample)*0.1
}
