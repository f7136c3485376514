package engine

import (
	"fmt"
	"sort"
	"time"
)

// CombosThatSum returns every distinct subset of nums that sums exactly to
// target, sorted ascending within each subset and lexicographically across
// subsets. The search is exhaustive (boards hold at most MaxTiles tiles, so
// 2^n enumeration stays cheap) and prunes any branch whose running sum
// already exceeds the target.
func CombosThatSum(nums []int, target int) []TileSet {
	if target <= 0 || len(nums) == 0 {
		return nil
	}

	sorted := make([]int, len(nums))
	copy(sorted, nums)
	sort.Ints(sorted)

	var out []TileSet
	var current TileSet

	var search func(start, remaining int)
	search = func(start, remaining int) {
		if remaining == 0 && len(current) > 0 {
			combo := make(TileSet, len(current))
			copy(combo, current)
			out = append(out, combo)
			return
		}
		for i := start; i < len(sorted); i++ {
			if sorted[i] > remaining {
				// Tiles are sorted, every later tile overshoots too
				break
			}
			current = append(current, sorted[i])
			search(i+1, remaining-sorted[i])
			current = current[:len(current)-1]
		}
	}

	search(0, target)
	return out
}

// MovesForTarget returns the legal moves for an arbitrary target against the
// current open tiles. It is a pure query and ignores the pending roll.
func (gs *GameState) MovesForTarget(target int) []TileSet {
	return CombosThatSum(gs.OpenTiles, target)
}

// AvailableMoves returns the legal moves for the pending target. An empty
// result with a pending target means the roll is unplayable.
func (gs *GameState) AvailableMoves() []TileSet {
	if gs.GameOver || gs.PendingTarget == nil {
		return nil
	}
	return CombosThatSum(gs.OpenTiles, *gs.PendingTarget)
}

// ValidateMove checks whether tiles is a legal move for the pending target.
// It returns nil when the move can be applied.
func (gs *GameState) ValidateMove(tiles TileSet) error {
	if gs.GameOver {
		return ErrGameOver
	}
	if gs.PendingTarget == nil {
		return fmt.Errorf("%w: no roll pending", ErrIllegalMove)
	}
	if len(tiles) == 0 {
		return fmt.Errorf("%w: empty tile set", ErrIllegalMove)
	}

	seen := make(map[int]bool, len(tiles))
	sum := 0
	for _, t := range tiles {
		if t < 1 || t > gs.TilesMax {
			return fmt.Errorf("%w: tile %d does not exist on this board", ErrIllegalMove, t)
		}
		if seen[t] {
			return fmt.Errorf("%w: tile %d listed twice", ErrIllegalMove, t)
		}
		seen[t] = true
		if !gs.Tiles[t] {
			return fmt.Errorf("%w: tile %d is already closed", ErrIllegalMove, t)
		}
		sum += t
	}

	if sum != *gs.PendingTarget {
		return fmt.Errorf("%w: tiles sum to %d, target is %d", ErrIllegalMove, sum, *gs.PendingTarget)
	}
	return nil
}

// applyRoll records a resolved dice draw on the state: it stores the target,
// advances the turn counter, and flips the game to terminal when no open
// subset can match the target.
func (gs *GameState) applyRoll(values []int, config *GameConfig) *RollResult {
	target := SumTiles(values)

	gs.TurnCount++
	gs.TotalTurns++
	gs.LastDice = append([]int(nil), values...)
	gs.PendingTarget = &target

	entry := TurnEntry{
		Turn:       gs.TurnCount,
		Dice:       append([]int(nil), values...),
		Target:     target,
		ScoreAfter: gs.Score,
		Timestamp:  time.Now().Unix(),
	}

	if len(gs.AvailableMoves()) == 0 {
		// No playable subset: the roll itself ends the game
		gs.PendingTarget = nil
		gs.GameOver = true
		gs.Message = fmt.Sprintf(config.Messages.NoMoves, target)
	} else {
		gs.Message = fmt.Sprintf(config.Messages.RollStatus, target)
	}

	gs.TurnHistory = append(gs.TurnHistory, entry)
	gs.CurrentTurns = append(gs.CurrentTurns, entry)
	gs.CurrentTurnsCount = len(gs.CurrentTurns)
	gs.refreshDerived()

	return &RollResult{Dice: entry.Dice, Target: target, Turn: gs.TurnCount}
}

// applyMove closes the given tiles and clears the pending target. The caller
// must have validated the move first.
func (gs *GameState) applyMove(tiles TileSet, config *GameConfig) {
	chosen := make(TileSet, len(tiles))
	copy(chosen, tiles)
	sort.Ints(chosen)

	for _, t := range chosen {
		gs.Tiles[t] = false
	}
	gs.PendingTarget = nil
	gs.refreshDerived()

	if len(gs.OpenTiles) == 0 {
		gs.GameOver = true
		gs.ShutBox = true
		gs.Message = config.Messages.ShutBox
	} else if gs.canUseSingleDie() {
		gs.Message = config.Messages.SingleDieAllowed
	} else {
		gs.Message = fmt.Sprintf(config.Messages.TilesClosed, gs.Score)
	}

	// Mark the matching history entry resolved
	if n := len(gs.TurnHistory); n > 0 {
		gs.TurnHistory[n-1].Move = chosen
		gs.TurnHistory[n-1].Resolved = true
		gs.TurnHistory[n-1].ScoreAfter = gs.Score
	}
	if n := len(gs.CurrentTurns); n > 0 {
		gs.CurrentTurns[n-1].Move = chosen
		gs.CurrentTurns[n-1].Resolved = true
		gs.CurrentTurns[n-1].ScoreAfter = gs.Score
	}
}

// canUseSingleDie reports whether the one-die rule is unlocked: the rule is
// enabled and every tile of {7,8,9} present on the board is closed.
func (gs *GameState) canUseSingleDie() bool {
	if !gs.SingleDieRule {
		return false
	}
	for _, t := range singleDieTiles {
		if t > gs.TilesMax {
			continue
		}
		if gs.Tiles[t] {
			return false
		}
	}
	return true
}

// refreshDerived recomputes the open-tile list, score, and helper views from
// the tile map. Call after any tile mutation or state load.
func (gs *GameState) refreshDerived() {
	open := make([]int, 0, gs.TilesMax)
	for t := 1; t <= gs.TilesMax; t++ {
		if gs.Tiles[t] {
			open = append(open, t)
		}
	}
	gs.OpenTiles = open
	gs.Score = SumTiles(open)
	gs.CanSingleDie = gs.canUseSingleDie()
	gs.TilesKey = tilesKey(gs.Tiles, gs.TilesMax)
}
