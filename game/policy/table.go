package policy

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shutbox/shutbox/game/engine"
)

// Table loads a learned lookup-table policy from a JSON file. Keys combine
// the board signature and the target, like "123X56X89|7"; values name the
// tiles to close, like "3+4". Misses and stale entries fall back to greedy.
func Table(path string) (Func, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy table: %w", err)
	}

	var table map[string]string
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse policy table: %w", err)
	}

	greedy := Greedy()

	return func(state *engine.GameState, moves []engine.TileSet) engine.TileSet {
		if len(moves) == 0 {
			return nil
		}
		if state.PendingTarget != nil {
			key := engine.BoardKey(state) + "|" + strconv.Itoa(*state.PendingTarget)
			if hit, ok := table[key]; ok {
				if want, err := parseTableMove(hit); err == nil && engine.ContainsMove(moves, want) {
					return want
				}
			}
		}
		return greedy(state, moves)
	}, nil
}

// parseTableMove turns a table value like "8+3" into the sorted tile set
// [3 8].
func parseTableMove(value string) (engine.TileSet, error) {
	parts := strings.Split(value, "+")
	move := make(engine.TileSet, 0, len(parts))
	for _, p := range parts {
		tile, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad table move %q: %w", value, err)
		}
		move = append(move, tile)
	}
	// Table values may list tiles high-first; moves are always ascending
	for i := 1; i < len(move); i++ {
		for j := i; j > 0 && move[j] < move[j-1]; j-- {
			move[j], move[j-1] = move[j-1], move[j]
		}
	}
	return move, nil
}
