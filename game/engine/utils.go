package engine

import "strings"

// SumTiles returns the sum of the given tile values
func SumTiles(tiles []int) int {
	sum := 0
	for _, t := range tiles {
		sum += t
	}
	return sum
}

// RemainingAfter returns the open-tile sum that would remain if the given
// move were applied. Policies use this to compare candidate moves.
func RemainingAfter(state *GameState, move TileSet) int {
	return state.Score - SumTiles(move)
}

// tilesKey renders the board as a compact signature like "123X56X89",
// with X marking closed tiles. Lookup-table policies key on this format.
func tilesKey(tiles map[int]bool, tilesMax int) string {
	var b strings.Builder
	for t := 1; t <= tilesMax; t++ {
		if tiles[t] {
			b.WriteByte(byte('0' + t%10))
		} else {
			b.WriteByte('X')
		}
	}
	return b.String()
}

// BoardKey returns the tiles-key signature for a state.
func BoardKey(state *GameState) string {
	return tilesKey(state.Tiles, state.TilesMax)
}

// ContainsMove reports whether moves contains a move equal to candidate.
// Both sides are assumed sorted ascending.
func ContainsMove(moves []TileSet, candidate TileSet) bool {
	for _, m := range moves {
		if equalTiles(m, candidate) {
			return true
		}
	}
	return false
}

func equalTiles(a, b TileSet) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MinTarget and MaxTarget bound the targets a roll can produce for the
// given dice count, used by the analysis tooling.
func MinTarget(dice int) int { return dice }

func MaxTarget(dice, sides int) int { return dice * sides }
