// Package api provides HTTP REST API handlers for the Shut the Box game.
//
// The api package implements:
//   - RESTful endpoints for game operations
//   - Session management endpoints
//   - Board configuration listing and creation
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session
//   - GET /api/sessions - List all sessions
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Get current game state
//   - POST /api/sessions/{id}/roll - Roll the dice
//   - POST /api/sessions/{id}/move - Close a set of tiles
//   - GET /api/sessions/{id}/moves - List legal moves for the pending roll
//   - POST /api/sessions/{id}/autoplay - Play the game out with a policy
//   - POST /api/sessions/{id}/reset - Start a new game in the session
//   - GET /api/sessions/{id}/history - Get turn history with pagination
//
// Configuration:
//   - GET /api/configs - List available board configurations
//   - GET /api/configs/{name} - Get a specific configuration
//   - POST /api/configs - Save a new configuration
//
// Request/Response Format:
//
// All endpoints accept and return JSON.
//
// Roll (POST /api/sessions/{id}/roll):
//
//	{
//	  "dice": 1|2,          // optional, defaults to 2; 1 only when 7-9 closed
//	  "forced": [3, 4]      // optional, fixed dice values for deterministic play
//	}
//
// Move (POST /api/sessions/{id}/move):
//
//	{
//	  "tiles": [3, 4]       // open tiles summing to the pending target
//	}
//
// AutoPlay (POST /api/sessions/{id}/autoplay):
//
//	{
//	  "policy": "greedy|fewest|human|random"  // optional, defaults to greedy
//	}
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes. Illegal
// rolls and moves return 409 Conflict; unknown sessions return 404:
//
//	{
//	  "error": "illegal move: tiles [1 2] sum to 3, target is 7"
//	}
package api
