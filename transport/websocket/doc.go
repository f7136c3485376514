// Package websocket provides WebSocket transport for the Shut the Box game.
//
// The websocket package implements:
//   - Real-time board state broadcasting
//   - Session-aware WebSocket connections
//   - Roll, move and game-over event notifications
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Messages are JSON-encoded with the following structure:
//   - state_update: the complete GameState after each roll or move
//   - event messages: roll, move, shut_box, game_over with event data
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?session=abc1) when establishing the connection.
// State updates are broadcast only to clients watching the same game.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// From an HTTP handler
//	hub.ServeWS(w, r, sessionID)
//
//	// After a game mutation
//	hub.BroadcastToSession(sessionID, state)
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple spectators can connect, disconnect, and receive updates
// simultaneously without blocking each other.
package websocket
