// Package service provides the business logic layer for the Shut the Box game.
//
// The service package implements:
//   - Multi-session game management
//   - Configuration management and loading
//   - Roll and move processing with validation
//   - Policy-driven autoplay
//   - Turn history tracking with pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages board configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine, providing session isolation, configuration management, and
// business logic orchestration. Each session maintains its own game engine
// instance with independent state.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	// Create a new session
//	sessionInfo, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Play one turn
//	roll, err := gameService.Roll(ctx, sessionInfo.ID, 2, nil)
//	outcome, err := gameService.ApplyMove(ctx, sessionInfo.ID, roll.Moves[0])
//
// Session Management:
//
// Sessions are identified by unique 4-character IDs and maintain independent
// game state. Multiple sessions can run concurrently with different board
// configurations. Sessions track creation time, last access time, and turn
// history for analytics and debugging.
package service
