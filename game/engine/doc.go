// Package engine implements the rules of Shut the Box.
//
// The engine package is the single source of truth for legality:
//   - Board state: numbered tiles, each open or closed
//   - Dice rolls with the one-die unlock rule (tiles 7-9 closed)
//   - Legal-move enumeration via exhaustive subset-sum search
//   - Move validation and turn/terminal transitions
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState is the snapshot returned by queries,
// while GameConfig defines the board loaded from JSON files.
//
// Usage:
//
//	config, err := engine.LoadConfigByName("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	roll, err := game.Roll(2)
//	moves := game.AvailableMoves()
//	state, err := game.ApplyMove(moves[0])
//
// Game Rules:
//
// Every tile starts open. Each turn the player rolls two dice (or one die,
// once tiles 7-9 are all closed) and must close a set of open tiles summing
// exactly to the roll. The game ends when no legal set exists or every tile
// is closed; the final score is the sum of tiles still open, with zero
// meaning the box was shut.
package engine
