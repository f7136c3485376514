package engine

// TileSet is an ordered set of tile values, e.g. [1 3 5]. Moves and
// enumeration results are always sorted ascending.
type TileSet []int

const (
	// Validation constants
	MinTiles     = 1
	MaxTiles     = 12
	MinDiceSides = 2
	MaxDiceSides = 12

	// DefaultTilesMax is the standard nine-tile board.
	DefaultTilesMax = 9

	// DefaultDiceSides is the standard six-sided die.
	DefaultDiceSides = 6

	// MaxDicePerRoll is the largest number of dice a single roll may use.
	MaxDicePerRoll = 2

	WebSocketBufferSize = 256
)

// singleDieTiles are the tiles that must all be closed before a one-die
// roll is allowed. The standard rule anchors this to the literal values
// 7-9 even on boards extended past nine tiles.
var singleDieTiles = []int{7, 8, 9}

// GameConfig represents a board configuration loaded from JSON
type GameConfig struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	TilesMax      int    `json:"tiles_max"`
	DiceSides     int    `json:"dice_sides"`
	SingleDieRule bool   `json:"single_die_rule"`
	Seed          int64  `json:"seed,omitempty"`
	Messages      struct {
		Welcome          string `json:"welcome"`
		RollStatus       string `json:"roll_status"`
		TilesClosed      string `json:"tiles_closed"`
		SingleDieAllowed string `json:"single_die_allowed"`
		NoMoves          string `json:"no_moves"`
		ShutBox          string `json:"shut_box"`
		GameOver         string `json:"game_over"`
	} `json:"messages"`
}

// RollResult reports the outcome of one dice roll
type RollResult struct {
	Dice   []int `json:"dice"`
	Target int   `json:"target"`
	Turn   int   `json:"turn"`
}

// GameState represents the complete game state
type GameState struct {
	Tiles         map[int]bool `json:"tiles"` // true=open, false=closed
	OpenTiles     []int        `json:"open_tiles"`
	TilesMax      int          `json:"tiles_max"`
	SingleDieRule bool         `json:"single_die_rule"`
	PendingTarget *int         `json:"pending_target,omitempty"`
	LastDice      []int        `json:"last_dice,omitempty"`
	TurnCount     int          `json:"turn_count"`
	Score         int          `json:"score"`
	Message       string       `json:"message"`
	GameOver      bool         `json:"game_over"`
	ShutBox       bool         `json:"shut_box"`
	ConfigName    string       `json:"config_name"`
	TurnHistory   []TurnEntry  `json:"turn_history"`
	TotalTurns    int          `json:"total_turns"`

	// CurrentTurns tracks only the turns since the last reset. It mirrors
	// TurnHistory entries but gets cleared on reset while TurnHistory
	// remains cumulative.
	CurrentTurns      []TurnEntry `json:"current_turns"`
	CurrentTurnsCount int         `json:"current_turns_count"`

	// Computed helper views (not required for core game logic)
	CanSingleDie bool   `json:"can_single_die"`
	TilesKey     string `json:"tiles_key,omitempty"`
}

// TurnEntry represents a single turn in the game history. A turn is a roll
// plus the move that resolved it; Resolved stays false when the roll ended
// the game with no legal move.
type TurnEntry struct {
	Turn       int     `json:"turn"`
	Dice       []int   `json:"dice"`
	Target     int     `json:"target"`
	Move       TileSet `json:"move,omitempty"`
	Resolved   bool    `json:"resolved"`
	ScoreAfter int     `json:"score_after"`
	Timestamp  int64   `json:"timestamp"`
}
