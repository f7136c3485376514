package engine

import "fmt"

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsGameOver() bool
	IsShutBox() bool
	GetScore() int
	GetTurnCount() int
	GetOpenTiles() []int

	// Dice operations
	Roll(dice int) (*RollResult, error)
	RollForced(values ...int) (*RollResult, error)
	CanUseSingleDie() bool
	HasPendingTarget() bool

	// Move operations
	AvailableMoves() []TileSet
	MovesForTarget(target int) []TileSet
	ApplyMove(tiles TileSet) (*GameState, error)

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetTurnHistory() []TurnEntry
	GetLastTurn() *TurnEntry
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state  *GameState
	config *GameConfig
	dice   Source
}

// NewEngine creates a new game engine with the provided configuration. When
// the config carries a seed the dice are deterministic; otherwise they are
// seeded from the clock.
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	var src Source
	if config.Seed != 0 {
		src = NewSeededSource(config.Seed)
	} else {
		src = newTimeSource()
	}

	return &GameEngine{
		config: config,
		state:  InitGameStateFromConfig(config),
		dice:   src,
	}, nil
}

// NewEngineWithSource creates an engine with an injected dice source,
// overriding any seed in the config.
func NewEngineWithSource(config *GameConfig, src Source) (*GameEngine, error) {
	eng, err := NewEngine(config)
	if err != nil {
		return nil, err
	}
	if src != nil {
		eng.dice = src
	}
	return eng, nil
}

// NewEngineWithDefaults creates a new game engine with the standard
// nine-tile board.
func NewEngineWithDefaults() *GameEngine {
	return &GameEngine{
		config: nil, // Will use defaults in InitGameStateFromConfig
		state:  InitGameStateFromConfig(nil),
		dice:   newTimeSource(),
	}
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState sets the game state (used for persistence loading)
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.Tiles == nil {
		return fmt.Errorf("state has no tiles")
	}
	state.refreshDerived()
	e.state = state
	return nil
}

// Reset resets the game to its opening position: all tiles open, no pending
// target. Cumulative history and turn totals are preserved across resets.
func (e *GameEngine) Reset() *GameState {
	prevHistory := e.state.TurnHistory
	prevTotal := e.state.TotalTurns

	e.state = InitGameStateFromConfig(e.config)

	e.state.TurnHistory = prevHistory
	e.state.TotalTurns = prevTotal
	e.state.CurrentTurns = []TurnEntry{}
	e.state.CurrentTurnsCount = 0

	return e.state
}

// IsGameOver returns whether the game reached a terminal state
func (e *GameEngine) IsGameOver() bool {
	return e.state.GameOver
}

// IsShutBox returns whether the player closed every tile
func (e *GameEngine) IsShutBox() bool {
	return e.state.ShutBox
}

// GetScore returns the sum of open tiles. It is meaningful at any point and
// canonical once the game is over.
func (e *GameEngine) GetScore() int {
	return e.state.Score
}

// GetTurnCount returns the number of rolls taken this game
func (e *GameEngine) GetTurnCount() int {
	return e.state.TurnCount
}

// GetOpenTiles returns the currently open tile values in ascending order
func (e *GameEngine) GetOpenTiles() []int {
	return e.state.OpenTiles
}

// CanUseSingleDie reports whether a one-die roll is currently legal
func (e *GameEngine) CanUseSingleDie() bool {
	return e.state.canUseSingleDie()
}

// HasPendingTarget reports whether a roll is awaiting a move
func (e *GameEngine) HasPendingTarget() bool {
	return e.state.PendingTarget != nil
}

// Roll draws dice (1 or 2) and sets the pending target. A one-die roll is
// only legal once every tile of 7-9 present on the board is closed; rolling
// two dice is always allowed.
func (e *GameEngine) Roll(dice int) (*RollResult, error) {
	if err := e.checkRollPreconditions(dice); err != nil {
		return nil, err
	}

	values := drawDice(e.dice, dice, e.diceSides())
	return e.state.applyRoll(values, e.effectiveConfig()), nil
}

// RollForced records a roll with caller-supplied die values instead of a
// random draw. Intended for tests and replays; the same legality rules
// apply as for Roll.
func (e *GameEngine) RollForced(values ...int) (*RollResult, error) {
	if err := e.checkRollPreconditions(len(values)); err != nil {
		return nil, err
	}

	sides := e.diceSides()
	for _, v := range values {
		if v < 1 || v > sides {
			return nil, fmt.Errorf("%w: forced value %d out of range [1,%d]", ErrIllegalRollRequest, v, sides)
		}
	}

	return e.state.applyRoll(values, e.effectiveConfig()), nil
}

// checkRollPreconditions enforces the terminal, pending-target, and
// dice-count rules shared by Roll and RollForced.
func (e *GameEngine) checkRollPreconditions(dice int) error {
	if e.state.GameOver {
		return fmt.Errorf("%w: final score %d", ErrGameOver, e.state.Score)
	}
	if e.state.PendingTarget != nil {
		return fmt.Errorf("%w: roll %d is still unresolved", ErrIllegalRollRequest, *e.state.PendingTarget)
	}
	if dice < 1 || dice > MaxDicePerRoll {
		return fmt.Errorf("%w: must roll 1 or 2 dice, got %d", ErrIllegalRollRequest, dice)
	}
	if dice == 1 && !e.state.canUseSingleDie() {
		return fmt.Errorf("%w: one die requires tiles 7-9 closed", ErrIllegalRollRequest)
	}
	return nil
}

// AvailableMoves returns every open-tile subset summing to the pending
// target. Empty when no roll is pending or no subset matches.
func (e *GameEngine) AvailableMoves() []TileSet {
	return e.state.AvailableMoves()
}

// MovesForTarget enumerates legal moves for an arbitrary target without
// touching the pending roll.
func (e *GameEngine) MovesForTarget(target int) []TileSet {
	return e.state.MovesForTarget(target)
}

// ApplyMove closes the chosen tiles if they form a legal move for the
// pending target and returns the updated snapshot.
func (e *GameEngine) ApplyMove(tiles TileSet) (*GameState, error) {
	if err := e.state.ValidateMove(tiles); err != nil {
		return nil, err
	}

	e.state.applyMove(tiles, e.effectiveConfig())
	return e.state, nil
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and resets the game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	e.config = config
	e.state = InitGameStateFromConfig(config)
	return nil
}

// GetTurnHistory returns the complete turn history
func (e *GameEngine) GetTurnHistory() []TurnEntry {
	return e.state.TurnHistory
}

// GetLastTurn returns the last turn taken, or nil if no rolls yet
func (e *GameEngine) GetLastTurn() *TurnEntry {
	if len(e.state.TurnHistory) == 0 {
		return nil
	}
	return &e.state.TurnHistory[len(e.state.TurnHistory)-1]
}

// effectiveConfig returns the engine config, falling back to the defaults
// the state was built from.
func (e *GameEngine) effectiveConfig() *GameConfig {
	if e.config != nil {
		return e.config
	}
	return DefaultGameConfig()
}

// diceSides returns the number of faces per die for this game.
func (e *GameEngine) diceSides() int {
	if e.config != nil && e.config.DiceSides > 0 {
		return e.config.DiceSides
	}
	return DefaultDiceSides
}
