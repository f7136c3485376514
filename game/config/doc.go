// Package config provides board configuration management for Shut the Box.
//
// The config package handles:
//   - Loading board configurations from JSON files
//   - Configuration validation and caching
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Board configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - The tile range (tiles_max) and die faces (dice_sides)
//   - Whether the single-die unlock rule is in effect
//   - Game messages for rolls, moves, and endings
//
// Available Configurations:
//
//   - classic: the standard nine-tile board with the single-die rule
//   - extended: a twelve-tile board for longer games
//   - no_single_die: nine tiles, two dice for the whole game
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	boardConfig, err := manager.LoadConfig("classic")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
package config
