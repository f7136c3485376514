package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateGameConfig validates a board configuration for correctness and
// playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.TilesMax < MinTiles || config.TilesMax > MaxTiles {
		return fmt.Errorf("config validation: tiles_max must be between %d and %d, got %d",
			MinTiles, MaxTiles, config.TilesMax)
	}

	if config.DiceSides < MinDiceSides || config.DiceSides > MaxDiceSides {
		return fmt.Errorf("config validation: dice_sides must be between %d and %d, got %d",
			MinDiceSides, MaxDiceSides, config.DiceSides)
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.NoMoves == "" {
		return fmt.Errorf("config validation: messages.no_moves is required")
	}
	if config.Messages.ShutBox == "" {
		return fmt.Errorf("config validation: messages.shut_box is required")
	}

	// Validate format strings
	if !strings.Contains(config.Messages.NoMoves, "%d") {
		return fmt.Errorf("config validation: messages.no_moves must contain %%d for the target")
	}
	if config.Messages.RollStatus != "" && !strings.Contains(config.Messages.RollStatus, "%d") {
		return fmt.Errorf("config validation: messages.roll_status must contain %%d for the target")
	}
	if config.Messages.TilesClosed != "" && !strings.Contains(config.Messages.TilesClosed, "%d") {
		return fmt.Errorf("config validation: messages.tiles_closed must contain %%d for the score")
	}
	if config.Messages.GameOver != "" && !strings.Contains(config.Messages.GameOver, "%d") {
		return fmt.Errorf("config validation: messages.game_over must contain %%d for the score")
	}

	return nil
}

// LoadGameConfig loads a board configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigByName loads a board configuration by name from the configs
// directory
func LoadConfigByName(configName string) (*GameConfig, error) {
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	configPath := filepath.Join("configs", configName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %v", configName, err)
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %v", configName, err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %v", configName, err)
	}

	return &config, nil
}

// DefaultGameConfig returns the standard nine-tile board with the classic
// single-die rule enabled.
func DefaultGameConfig() *GameConfig {
	config := &GameConfig{
		Name:          "classic",
		Description:   "Standard nine-tile Shut the Box",
		TilesMax:      DefaultTilesMax,
		DiceSides:     DefaultDiceSides,
		SingleDieRule: true,
	}
	config.Messages.Welcome = "Tiles 1-9 are open. Roll the dice!"
	config.Messages.RollStatus = "Rolled %d - pick tiles that match"
	config.Messages.TilesClosed = "Tiles closed. Score now %d"
	config.Messages.SingleDieAllowed = "High tiles closed - you may roll a single die"
	config.Messages.NoMoves = "No legal move for %d. Game over!"
	config.Messages.ShutBox = "Shut the box! Perfect game."
	config.Messages.GameOver = "Game over! Final score: %d"
	return config
}

// InitGameStateFromConfig creates a new game state using the provided
// configuration. A nil config falls back to the classic board.
func InitGameStateFromConfig(config *GameConfig) *GameState {
	if config == nil {
		config = DefaultGameConfig()
	}

	tiles := make(map[int]bool, config.TilesMax)
	for t := 1; t <= config.TilesMax; t++ {
		tiles[t] = true
	}

	state := &GameState{
		Tiles:             tiles,
		TilesMax:          config.TilesMax,
		SingleDieRule:     config.SingleDieRule,
		Message:           config.Messages.Welcome,
		ConfigName:        config.Name,
		TurnHistory:       []TurnEntry{},
		TotalTurns:        0,
		CurrentTurns:      []TurnEntry{},
		CurrentTurnsCount: 0,
	}
	state.refreshDerived()
	return state
}
