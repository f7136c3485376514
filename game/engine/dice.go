package engine

import (
	"math/rand"
	"time"
)

// Source is the randomness provider for dice rolls. Each engine instance
// owns its own source, so independent games can run in parallel without
// shared mutable random state.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// NewSeededSource returns a deterministic Source for reproducible games.
func NewSeededSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// newTimeSource returns a Source seeded from the wall clock.
func newTimeSource() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// drawDice draws count die values in [1, sides] from the source.
func drawDice(src Source, count, sides int) []int {
	values := make([]int, count)
	for i := range values {
		values[i] = src.Intn(sides) + 1
	}
	return values
}
