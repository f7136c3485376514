// Package mcp provides a Model Context Protocol server for the Shut the Box game.
//
// The mcp package implements:
//   - MCP server exposing game operations as tools for AI agents
//   - Thin HTTP proxying to the REST API server
//   - Stdio transport for local MCP clients
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_session: Create new game session with board config selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - game_state: Get the tile rack, score and turn status
//   - roll_dice: Roll two dice, or one once tiles 7-9 are closed
//   - list_moves: List every legal tile set for the pending roll
//   - apply_move: Close a set of open tiles summing to the roll
//   - auto_play: Play the game to completion with a built-in policy
//   - reset_game: Start a fresh game in the same session
//   - turn_history: Retrieve turn history with pagination
//   - list_configs: List available board configurations
//   - game_instructions: Full rules, scoring and strategy reference
//
// Architecture:
//
// The client does not embed the game engine. Every tool call is proxied
// to the REST API over HTTP, so the MCP process and the game server can
// run separately and the REST API stays the single source of truth.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Play complete games turn by turn
//   - Enumerate legal moves before committing to one
//   - Compare built-in policies via auto_play
//   - Manage multiple concurrent sessions
//   - Review past turns from the history
package mcp
