package service

import (
	"time"

	"github.com/shutbox/shutbox/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// RollOutcome contains the result of a roll operation
type RollOutcome struct {
	Dice      []int             `json:"dice"`
	Target    int               `json:"target"`
	Turn      int               `json:"turn"`
	Moves     []engine.TileSet  `json:"moves"`
	MoveCount int               `json:"move_count"`
	GameOver  bool              `json:"game_over"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events,omitempty"`
}

// MoveOutcome contains the result of applying a move
type MoveOutcome struct {
	Applied   engine.TileSet    `json:"applied"`
	Score     int               `json:"score"`
	ShutBox   bool              `json:"shut_box"`
	GameOver  bool              `json:"game_over"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events,omitempty"`
}

// MovesResult lists the legal moves for the pending target
type MovesResult struct {
	Target    int              `json:"target"`
	Moves     []engine.TileSet `json:"moves"`
	MoveCount int              `json:"move_count"`
	OpenTiles []int            `json:"open_tiles"`
}

// AutoPlayResult summarizes a game played out by a policy
type AutoPlayResult struct {
	Policy      string             `json:"policy"`
	TurnsPlayed int                `json:"turns_played"`
	FinalScore  int                `json:"final_score"`
	ShutBox     bool               `json:"shut_box"`
	GameState   *engine.GameState  `json:"game_state"`
	Turns       []engine.TurnEntry `json:"turns"`
	Events      []GameEvent        `json:"events,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string    `json:"type"` // "roll", "move", "single_die_unlocked", "game_over", "shut_box", "reset"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Target    int       `json:"target,omitempty"`
	Tiles     []int     `json:"tiles,omitempty"`
}

// HistoryOptions configures turn history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated turn history
type HistoryResponse struct {
	Turns       []engine.TurnEntry `json:"turns"`
	TotalTurns  int                `json:"total_turns"`
	Page        int                `json:"page"`
	PageSize    int                `json:"page_size"`
	TotalPages  int                `json:"total_pages"`
	HasNext     bool               `json:"has_next"`
	HasPrevious bool               `json:"has_previous"`
}

// ConfigInfo provides information about a board configuration
type ConfigInfo struct {
	Filename      string `json:"filename"`
	ConfigID      string `json:"config_id"` // The identifier to use for session creation
	Name          string `json:"name"`      // Display name
	Description   string `json:"description"`
	TilesMax      int    `json:"tiles_max"`
	DiceSides     int    `json:"dice_sides"`
	SingleDieRule bool   `json:"single_die_rule"`
}
