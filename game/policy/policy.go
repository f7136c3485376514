package policy

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/shutbox/shutbox/game/engine"
)

// Func selects one move from the legal-move set for the current snapshot.
// A nil return means the policy declines to move (only sensible when moves
// is empty). Policies never mutate the snapshot.
type Func func(state *engine.GameState, moves []engine.TileSet) engine.TileSet

// Random picks a legal move uniformly at random.
func Random(rng *rand.Rand) Func {
	return func(state *engine.GameState, moves []engine.TileSet) engine.TileSet {
		if len(moves) == 0 {
			return nil
		}
		return moves[rng.Intn(len(moves))]
	}
}

// Greedy picks the move minimizing the open-tile sum left behind. Every
// legal move sums to the same target, so ties resolve to the first
// (lexicographically smallest) candidate.
func Greedy() Func {
	return func(state *engine.GameState, moves []engine.TileSet) engine.TileSet {
		if len(moves) == 0 {
			return nil
		}
		best := moves[0]
		bestRemaining := engine.RemainingAfter(state, best)
		for _, mv := range moves[1:] {
			if remaining := engine.RemainingAfter(state, mv); remaining < bestRemaining {
				best = mv
				bestRemaining = remaining
			}
		}
		return best
	}
}

// Fewest picks the move that closes the fewest tiles, keeping small tiles
// around for awkward late-game targets.
func Fewest() Func {
	return func(state *engine.GameState, moves []engine.TileSet) engine.TileSet {
		if len(moves) == 0 {
			return nil
		}
		best := moves[0]
		for _, mv := range moves[1:] {
			if len(mv) < len(best) {
				best = mv
			}
		}
		return best
	}
}

// HumanLike prefers moves that close two or more tiles, falling back to
// greedy when only single-tile moves exist.
func HumanLike() Func {
	greedy := Greedy()
	return func(state *engine.GameState, moves []engine.TileSet) engine.TileSet {
		if len(moves) == 0 {
			return nil
		}
		var multi []engine.TileSet
		for _, mv := range moves {
			if len(mv) >= 2 {
				multi = append(multi, mv)
			}
		}
		if len(multi) > 0 {
			return greedy(state, multi)
		}
		return greedy(state, moves)
	}
}

// ByName resolves a registered policy. The seed only affects the random
// policy; table policies need a table file and are built via Table instead.
func ByName(name string, seed int64) (Func, error) {
	switch name {
	case "random":
		return Random(rand.New(rand.NewSource(seed))), nil
	case "greedy":
		return Greedy(), nil
	case "fewest":
		return Fewest(), nil
	case "human":
		return HumanLike(), nil
	default:
		return nil, fmt.Errorf("unknown policy %q (available: %v)", name, Names())
	}
}

// Names lists the registered policy names in stable order.
func Names() []string {
	names := []string{"random", "greedy", "fewest", "human"}
	sort.Strings(names)
	return names
}
