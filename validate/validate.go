// Command validate provides a small CLI that validates board configuration
// JSON files in the ../configs directory. It checks:
//   - JSON structure and required fields (name, description)
//   - Tile and dice ranges (tiles_max 1-12, dice_sides 2-12)
//   - Required message keys and %d placeholders in format messages
//   - Playability: every tile can appear in at least one legal move, so a
//     shut box is possible, and every two-dice target has an answer on the
//     fresh board
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shutbox/shutbox/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
// It performs structural checks, message validation, and a playability
// analysis of the board.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	// Required fields
	if config.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "name is required")
	}
	if config.Description == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "description is required")
	}

	// Ranges
	if config.TilesMax < engine.MinTiles || config.TilesMax > engine.MaxTiles {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("tiles_max must be between %d and %d, got %d",
			engine.MinTiles, engine.MaxTiles, config.TilesMax))
	}
	if config.DiceSides < engine.MinDiceSides || config.DiceSides > engine.MaxDiceSides {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("dice_sides must be between %d and %d, got %d",
			engine.MinDiceSides, engine.MaxDiceSides, config.DiceSides))
	}

	// Required messages
	if config.Messages.Welcome == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required message: welcome")
	}
	if config.Messages.NoMoves == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required message: no_moves")
	}
	if config.Messages.ShutBox == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required message: shut_box")
	}

	// Format placeholders. no_moves is required; the rest only need the
	// placeholder when present.
	if config.Messages.NoMoves != "" && !strings.Contains(config.Messages.NoMoves, "%d") {
		result.Valid = false
		result.Errors = append(result.Errors, "messages.no_moves must contain %d for the target")
	}
	if config.Messages.RollStatus != "" && !strings.Contains(config.Messages.RollStatus, "%d") {
		result.Valid = false
		result.Errors = append(result.Errors, "messages.roll_status must contain %d for the target")
	}
	if config.Messages.TilesClosed != "" && !strings.Contains(config.Messages.TilesClosed, "%d") {
		result.Valid = false
		result.Errors = append(result.Errors, "messages.tiles_closed must contain %d for the score")
	}
	if config.Messages.GameOver != "" && !strings.Contains(config.Messages.GameOver, "%d") {
		result.Valid = false
		result.Errors = append(result.Errors, "messages.game_over must contain %d for the score")
	}

	// Playability analysis only makes sense once the structure is sound
	if result.Valid {
		playability := validatePlayability(&config)
		result.Valid = playability.Valid
		result.Errors = append(result.Errors, playability.Errors...)
	}

	if result.Valid {
		worst := config.TilesMax * (config.TilesMax + 1) / 2
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Tiles: 1-%d (worst score %d)", config.TilesMax, worst))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Dice: 2 x d%d", config.DiceSides))
		if config.SingleDieRule {
			result.Errors = append(result.Errors, "✓ Single-die rule: active once 7-9 are closed")
		} else {
			result.Errors = append(result.Errors, "✓ Single-die rule: disabled")
		}
	}

	return result
}

// validatePlayability checks that the board can actually be shut and that
// no roll is a guaranteed dead end on the fresh board.
func validatePlayability(config *engine.GameConfig) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	maxTarget := engine.MaxTarget(engine.MaxDicePerRoll, config.DiceSides)

	// A tile whose value exceeds the largest possible roll can never be
	// closed, so the box can never be shut.
	var unclosable []int
	for tile := 1; tile <= config.TilesMax; tile++ {
		if tile > maxTarget {
			unclosable = append(unclosable, tile)
		}
	}
	if len(unclosable) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(
			"Unplayable board: tiles %v exceed the maximum roll of %d and can never close", unclosable, maxTarget))
		return result
	}

	// Every two-dice target must have at least one legal move on the
	// fresh board; otherwise an opening roll could end the game on turn 1.
	state := engine.InitGameStateFromConfig(config)
	var deadTargets []int
	for target := engine.MinTarget(engine.MaxDicePerRoll); target <= maxTarget; target++ {
		if len(state.MovesForTarget(target)) == 0 {
			deadTargets = append(deadTargets, target)
		}
	}
	if len(deadTargets) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(
			"Dead opening rolls: targets %v have no legal move on a fresh board", deadTargets))
		return result
	}

	result.Errors = append(result.Errors, fmt.Sprintf(
		"✓ Playability: all targets 2-%d answerable, shut box possible", maxTarget))

	// The single-die rule is anchored to tiles 7-9; on smaller boards it
	// can never trigger, which is legal but worth flagging.
	if config.SingleDieRule && config.TilesMax < 7 {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"✓ Note: single_die_rule is set but tiles only go up to %d, so it never triggers", config.TilesMax))
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
