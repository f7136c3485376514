package engine

import (
	"errors"
	"testing"
)

func createTestConfig() *GameConfig {
	config := &GameConfig{
		Name:          "Engine Test Config",
		Description:   "Configuration for engine integration tests",
		TilesMax:      9,
		DiceSides:     6,
		SingleDieRule: true,
	}
	config.Messages.Welcome = "Welcome to the test box!"
	config.Messages.RollStatus = "Rolled %d"
	config.Messages.TilesClosed = "Score now %d"
	config.Messages.SingleDieAllowed = "Single die unlocked"
	config.Messages.NoMoves = "No move for %d"
	config.Messages.ShutBox = "Shut the box!"
	config.Messages.GameOver = "Final score %d"
	return config
}

func mustRollForced(t *testing.T, eng *GameEngine, values ...int) *RollResult {
	t.Helper()
	roll, err := eng.RollForced(values...)
	if err != nil {
		t.Fatalf("RollForced(%v) failed: %v", values, err)
	}
	return roll
}

func mustApplyMove(t *testing.T, eng *GameEngine, tiles ...int) *GameState {
	t.Helper()
	state, err := eng.ApplyMove(tiles)
	if err != nil {
		t.Fatalf("ApplyMove(%v) failed: %v", tiles, err)
	}
	return state
}

func TestNewEngine(t *testing.T) {
	config := createTestConfig()
	eng, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create new engine: %v", err)
	}

	if eng == nil {
		t.Fatal("Expected engine to be non-nil")
	}

	// Initial score is the sum 1..9 with every tile open
	if eng.GetScore() != 45 {
		t.Errorf("Expected initial score 45, got %d", eng.GetScore())
	}
	if len(eng.GetOpenTiles()) != 9 {
		t.Errorf("Expected 9 open tiles, got %d", len(eng.GetOpenTiles()))
	}
	if eng.GetTurnCount() != 0 {
		t.Errorf("Expected turn count 0, got %d", eng.GetTurnCount())
	}
	if eng.IsGameOver() {
		t.Error("Expected game not to be over initially")
	}
	if eng.HasPendingTarget() {
		t.Error("Expected no pending target initially")
	}
	if eng.CanUseSingleDie() {
		t.Error("Expected single die to be locked while 7-9 are open")
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := createTestConfig()
	config.Name = "" // Make config invalid

	_, err := NewEngine(config)
	if err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestNewEngineWithDefaults(t *testing.T) {
	eng := NewEngineWithDefaults()
	if eng == nil {
		t.Fatal("Expected engine to be non-nil")
	}

	state := eng.GetState()
	if state.TilesMax != DefaultTilesMax {
		t.Errorf("Expected tiles_max %d, got %d", DefaultTilesMax, state.TilesMax)
	}
	if state.Score != 45 {
		t.Errorf("Expected score 45, got %d", state.Score)
	}
}

func TestInitialScoreForAllBoardSizes(t *testing.T) {
	for tilesMax := MinTiles; tilesMax <= MaxTiles; tilesMax++ {
		config := createTestConfig()
		config.TilesMax = tilesMax

		eng, err := NewEngine(config)
		if err != nil {
			t.Fatalf("tiles_max=%d: %v", tilesMax, err)
		}

		want := tilesMax * (tilesMax + 1) / 2
		if eng.GetScore() != want {
			t.Errorf("tiles_max=%d: expected score %d, got %d", tilesMax, want, eng.GetScore())
		}
		if eng.IsGameOver() {
			t.Errorf("tiles_max=%d: new game should not be over", tilesMax)
		}
	}
}

func TestRollForced_SetsPendingTarget(t *testing.T) {
	eng, _ := NewEngine(createTestConfig())

	roll := mustRollForced(t, eng, 3, 4)
	if roll.Target != 7 {
		t.Errorf("Expected target 7, got %d", roll.Target)
	}
	if roll.Turn != 1 {
		t.Errorf("Expected turn 1, got %d", roll.Turn)
	}
	if !eng.HasPendingTarget() {
		t.Error("Expected pending target after roll")
	}
	if eng.GetTurnCount() != 1 {
		t.Errorf("Expected turn count 1, got %d", eng.GetTurnCount())
	}
}

func TestRoll_WhilePending(t *testing.T) {
	eng, _ := NewEngine(createTestConfig())
	mustRollForced(t, eng, 3, 4)

	_, err := eng.RollForced(2, 2)
	if !errors.Is(err, ErrIllegalRollRequest) {
		t.Errorf("Expected ErrIllegalRollRequest for roll over pending roll, got %v", err)
	}
	_, err = eng.Roll(2)
	if !errors.Is(err, ErrIllegalRollRequest) {
		t.Errorf("Expected ErrIllegalRollRequest from Roll too, got %v", err)
	}
}

func TestRoll_SingleDieLockedWhileHighTilesOpen(t *testing.T) {
	eng, _ := NewEngine(createTestConfig())

	_, err := eng.Roll(1)
	if !errors.Is(err, ErrIllegalRollRequest) {
		t.Errorf("Expected ErrIllegalRollRequest for one die with 7-9 open, got %v", err)
	}
	_, err = eng.RollForced(5)
	if !errors.Is(err, ErrIllegalRollRequest) {
		t.Errorf("Expected ErrIllegalRollRequest for forced one-die roll, got %v", err)
	}
}

func TestRoll_SingleDieUnlocksWhenHighTilesClosed(t *testing.T) {
	eng, _ := NewEngine(createTestConfig())

	// Close 7, 8, 9 one turn at a time
	for _, tile := range []int{7, 8, 9} {
		mustRollForced(t, eng, tile-3, 3)
		mustApplyMove(t, eng, tile)
	}

	if !eng.CanUseSingleDie() {
		t.Fatal("Expected single die to be unlocked with 7-9 closed")
	}

	roll := mustRollForced(t, eng, 5)
	if roll.Target != 5 {
		t.Errorf("Expected target 5, got %d", roll.Target)
	}

	// Two dice must remain a legal fallback
	mustApplyMove(t, eng, 5)
	if _, err := eng.RollForced(1, 2); err != nil {
		t.Errorf("Two-dice roll should stay legal after unlock: %v", err)
	}
}

func TestRoll_SingleDieRuleDisabled(t *testing.T) {
	config := createTestConfig()
	config.SingleDieRule = false
	eng, _ := NewEngine(config)

	for _, tile := range []int{7, 8, 9} {
		mustRollForced(t, eng, tile-3, 3)
		mustApplyMove(t, eng, tile)
	}

	if eng.CanUseSingleDie() {
		t.Error("Single die should stay locked when the rule is disabled")
	}
	if _, err := eng.Roll(1); !errors.Is(err, ErrIllegalRollRequest) {
		t.Errorf("Expected ErrIllegalRollRequest, got %v", err)
	}
}

func TestRollForced_RejectsOutOfRangeValues(t *testing.T) {
	eng, _ := NewEngine(createTestConfig())

	for _, values := range [][]int{{0, 3}, {7, 1}, {3, -2}} {
		_, err := eng.RollForced(values...)
		if !errors.Is(err, ErrIllegalRollRequest) {
			t.Errorf("RollForced(%v): expected ErrIllegalRollRequest, got %v", values, err)
		}
	}
}

func TestRoll_RejectsBadDiceCount(t *testing.T) {
	eng, _ := NewEngine(createTestConfig())

	for _, dice := range []int{0, 3, -1} {
		_, err := eng.Roll(dice)
		if !errors.Is(err, ErrIllegalRollRequest) {
			t.Errorf("Roll(%d): expected ErrIllegalRollRequest, got %v", dice, err)
		}
	}
}

func TestRoll_SeededSourceIsDeterministic(t *testing.T) {
	config := createTestConfig()
	config.Seed = 42

	first, _ := NewEngine(config)
	second, _ := NewEngine(config)

	for i := 0; i < 3; i++ {
		a, err := first.Roll(2)
		if err != nil {
			t.Fatalf("roll %d: %v", i, err)
		}
		b, err := second.Roll(2)
		if err != nil {
			t.Fatalf("roll %d: %v", i, err)
		}
		if a.Target != b.Target || a.Dice[0] != b.Dice[0] || a.Dice[1] != b.Dice[1] {
			t.Fatalf("roll %d: seeded engines diverged: %v vs %v", i, a, b)
		}

		// Resolve or accept the terminal state so the next roll is legal
		moves := first.AvailableMoves()
		if len(moves) == 0 {
			return
		}
		if _, err := first.ApplyMove(moves[0]); err != nil {
			t.Fatalf("roll %d: %v", i, err)
		}
		if _, err := second.ApplyMove(moves[0]); err != nil {
			t.Fatalf("roll %d: %v", i, err)
		}
	}
}

func TestRoll_DrawnValuesStayInRange(t *testing.T) {
	config := createTestConfig()
	eng, _ := NewEngineWithSource(config, NewSeededSource(7))

	for i := 0; i < 50 && !eng.IsGameOver(); i++ {
		roll, err := eng.Roll(2)
		if err != nil {
			t.Fatalf("roll %d: %v", i, err)
		}
		for _, v := range roll.Dice {
			if v < 1 || v > config.DiceSides {
				t.Fatalf("die value %d out of range", v)
			}
		}
		if eng.IsGameOver() {
			break
		}
		moves := eng.AvailableMoves()
		if _, err := eng.ApplyMove(moves[0]); err != nil {
			t.Fatalf("roll %d: %v", i, err)
		}
	}
}

func TestTerminal_RejectsAllMutations(t *testing.T) {
	config := createTestConfig()
	config.TilesMax = 2
	eng, _ := NewEngine(config)

	// Target 9 has no subset of {1,2}: roll ends the game
	mustRollForced(t, eng, 4, 5)
	if !eng.IsGameOver() {
		t.Fatal("Expected game over after unplayable roll")
	}
	if eng.GetScore() != 3 {
		t.Errorf("Expected terminal score 3, got %d", eng.GetScore())
	}

	if _, err := eng.RollForced(1, 1); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver on roll, got %v", err)
	}
	if _, err := eng.Roll(2); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver on random roll, got %v", err)
	}
	if _, err := eng.ApplyMove(TileSet{1, 2}); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver on move, got %v", err)
	}
}

func TestReset_RestoresOpeningPosition(t *testing.T) {
	eng, _ := NewEngine(createTestConfig())

	mustRollForced(t, eng, 3, 4)
	mustApplyMove(t, eng, 7)
	mustRollForced(t, eng, 4, 4)
	mustApplyMove(t, eng, 8)

	state := eng.Reset()

	if state.Score != 45 {
		t.Errorf("Expected score 45 after reset, got %d", state.Score)
	}
	if state.PendingTarget != nil {
		t.Error("Expected no pending target after reset")
	}
	if state.TurnCount != 0 {
		t.Errorf("Expected turn count 0 after reset, got %d", state.TurnCount)
	}
	// Cumulative history survives, current segment is cleared
	if state.TotalTurns != 2 {
		t.Errorf("Expected total turns 2 preserved, got %d", state.TotalTurns)
	}
	if len(state.TurnHistory) != 2 {
		t.Errorf("Expected 2 history entries preserved, got %d", len(state.TurnHistory))
	}
	if len(state.CurrentTurns) != 0 {
		t.Errorf("Expected current turns cleared, got %d", len(state.CurrentTurns))
	}
}

func TestSetState_RecomputesDerivedFields(t *testing.T) {
	eng, _ := NewEngine(createTestConfig())

	state := InitGameStateFromConfig(createTestConfig())
	state.Tiles[7] = false
	state.Tiles[8] = false
	state.Tiles[9] = false
	// Deliberately stale derived fields
	state.OpenTiles = nil
	state.Score = 0

	if err := eng.SetState(state); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}

	got := eng.GetState()
	if got.Score != 21 {
		t.Errorf("Expected recomputed score 21, got %d", got.Score)
	}
	if len(got.OpenTiles) != 6 {
		t.Errorf("Expected 6 open tiles, got %d", len(got.OpenTiles))
	}
	if !got.CanSingleDie {
		t.Error("Expected single die unlocked with 7-9 closed")
	}
}

func TestSetState_NilState(t *testing.T) {
	eng, _ := NewEngine(createTestConfig())
	if err := eng.SetState(nil); err == nil {
		t.Error("Expected error for nil state")
	}
}
