package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/shutbox/shutbox/game/engine"
	"github.com/shutbox/shutbox/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Shut the Box",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Shut the Box - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Close all tiles (1-9) by rolling dice and closing open tiles that sum to
the roll. Close every tile to "shut the box" and score 0. Otherwise your
score is the sum of the tiles still open when no legal move remains.

AVAILABLE TOOLS:
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- game_state: Get current board state
- roll_dice: Roll the dice (two dice, or one once tiles 7-9 are closed)
- list_moves: List the legal tile sets for the pending roll
- apply_move: Close a set of open tiles summing to the roll
- auto_play: Let a built-in policy finish the game
- reset_game: Start a fresh game in the same session
- turn_history: View past turns
- list_configs: List available board configurations
- game_instructions: Get comprehensive game instructions and rules

TURN FLOW: roll_dice, then list_moves (optional), then apply_move.
Repeat until the game ends. Lower scores are better.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional board config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the board config to use (optional, defaults to classic)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "roll_dice",
		Description: "Roll the dice to start a turn. Two dice by default; one die is allowed only once tiles 7, 8 and 9 are all closed (when the board's single-die rule is active).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"dice": map[string]interface{}{
					"type":        "integer",
					"enum":        []int{1, 2},
					"description": "Number of dice to roll (default 2)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleRollDice)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_moves",
		Description: "List every legal set of open tiles summing to the pending roll",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleListMoves)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "apply_move",
		Description: "Close a set of open tiles that sums exactly to the pending roll",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"tiles": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "integer",
					},
					"description": "Open tile values to close, e.g. [3, 4] for a roll of 7",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why this tile set was chosen (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "tiles"},
		},
	}, c.handleApplyMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "auto_play",
		Description: "Play the current game to completion using a built-in policy",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"policy": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"greedy", "fewest", "human", "random"},
					"description": "Move selection policy (default greedy)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleAutoPlay)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the board to start a fresh game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "turn_history",
		Description: "Get turn history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleTurnHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available board configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configName, _ := args["config_name"].(string)

	body := map[string]string{}
	if configName != "" {
		body["config_id"] = configName
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRollDice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	body := map[string]interface{}{}
	if dice, ok := args["dice"].(float64); ok {
		body["dice"] = int(dice)
	}

	var outcome service.RollOutcome
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/roll", sessionID), body, &outcome)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatRollOutcome(&outcome)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleListMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var moves service.MovesResult
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/moves", sessionID), nil, &moves)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Target: %d\nOpen tiles: %s\n\nLegal moves (%d):\n",
		moves.Target, formatTiles(moves.OpenTiles), moves.MoveCount)
	for i, move := range moves.Moves {
		result += fmt.Sprintf("%d. %s\n", i+1, formatTiles(move))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleApplyMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	tilesRaw, _ := args["tiles"].([]interface{})
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	tiles := make([]int, 0, len(tilesRaw))
	for _, tile := range tilesRaw {
		if v, ok := tile.(float64); ok {
			tiles = append(tiles, int(v))
		}
	}

	body := map[string]interface{}{
		"tiles": tiles,
	}

	var outcome service.MoveOutcome
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), body, &outcome)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMoveOutcome(&outcome)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleAutoPlay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	policy, _ := args["policy"].(string)

	body := map[string]interface{}{}
	if policy != "" {
		body["policy"] = policy
	}

	var result service.AutoPlayResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/autoplay", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatAutoPlayResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleTurnHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatHistory(&history)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		rule := "two dice throughout"
		if config.SingleDieRule {
			rule = "one die allowed once 7-9 are closed"
		}
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Tiles: 1-%d, Die faces: %d, Rule: %s\n\n",
			config.Name, config.ConfigID, config.Description, config.TilesMax, config.DiceSides, rule)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Shut the Box - Complete Instructions

GAME OBJECTIVE:
Close all tiles on the board. Each turn you roll dice and close a set of
open tiles that sums exactly to the roll. If you close every tile you
"shut the box" and score a perfect 0. When no legal set exists, the game
ends and your score is the sum of the tiles still open. Lower is better.

TURN FLOW:
1. roll_dice - roll two dice (or one, see single-die rule below)
2. list_moves - see every legal tile set for the roll (optional)
3. apply_move - close one legal set of tiles
Repeat until the box is shut or no move exists for a roll.

SINGLE-DIE RULE:
On boards that enable it, once tiles 7, 8 and 9 are all closed you may
choose to roll a single die instead of two. This matters late in the
game: with only low tiles open, a two-dice roll often has no legal move,
while a single die keeps the game alive.

STRATEGY NOTES:
- Closing high tiles early reduces the penalty when you get stuck.
- Prefer moves that keep many distinct sums reachable. A board with
  tiles {1,2,3} open answers more rolls than one with just {6}.
- The "greedy" policy closes the highest tiles first. The "fewest"
  policy closes the fewest tiles per roll. Neither is optimal in every
  position; use list_moves and judge.
- Rolls of 7 on a fresh board have five legal answers; rolls of 2 have
  exactly one. Plan for awkward small rolls late in the game.

SCORING:
- Shut box: 0 (perfect game)
- Otherwise: sum of open tiles when the game ends
- On the classic nine-tile board the worst score is 45

BOARD DISPLAY:
Open tiles show their value; closed tiles show as "-". Example:
  Tiles: 1 2 - 4 5 - - 8 9   (tiles 3, 6 and 7 are closed)

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent state and configuration
- reset_game starts a fresh game but keeps cumulative turn history

CONFIGURATION OPTIONS:
- classic: tiles 1-9, two six-sided dice, single-die rule active
- extended: tiles 1-12 for longer games
- no_single_die: two dice for the whole game, no late-game relief`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

// formatGameState renders the tile rack with open values and dashes for
// closed tiles, plus score and turn status.
func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	result.WriteString("Tiles: ")
	for tile := 1; tile <= state.TilesMax; tile++ {
		if tile > 1 {
			result.WriteString(" ")
		}
		if state.Tiles[tile] {
			result.WriteString(fmt.Sprintf("%d", tile))
		} else {
			result.WriteString("-")
		}
	}
	result.WriteString("\n")

	result.WriteString(fmt.Sprintf("Score: %d | Turn: %d\n", state.Score, state.TurnCount))

	if state.PendingTarget != nil {
		result.WriteString(fmt.Sprintf("Pending roll: %v = %d (awaiting move)\n", state.LastDice, *state.PendingTarget))
	} else if len(state.LastDice) > 0 {
		result.WriteString(fmt.Sprintf("Last roll: %v\n", state.LastDice))
	}

	if state.SingleDieRule {
		if state.CanSingleDie {
			result.WriteString("Single die: available (7-9 closed)\n")
		} else {
			result.WriteString("Single die: locked until 7-9 are closed\n")
		}
	}

	if state.GameOver {
		if state.ShutBox {
			result.WriteString("\nSHUT THE BOX! Perfect score: 0")
		} else {
			result.WriteString(fmt.Sprintf("\nGAME OVER - Final score: %d", state.Score))
		}
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

func formatRollOutcome(outcome *service.RollOutcome) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Rolled %s = %d (turn %d)\n", formatDice(outcome.Dice), outcome.Target, outcome.Turn))

	if outcome.GameOver {
		b.WriteString("No legal moves for this roll. Game over.\n")
	} else {
		b.WriteString(fmt.Sprintf("\nLegal moves (%d):\n", outcome.MoveCount))
		for i, move := range outcome.Moves {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, formatTiles(move)))
		}
	}

	b.WriteString("\n" + formatGameState(outcome.GameState))
	return b.String()
}

func formatMoveOutcome(outcome *service.MoveOutcome) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Closed tiles %s\n", formatTiles(outcome.Applied)))

	if len(outcome.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range outcome.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	b.WriteString("\n" + formatGameState(outcome.GameState))
	return b.String()
}

func formatAutoPlayResult(result *service.AutoPlayResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Auto-play finished (policy: %s)\n", result.Policy))
	b.WriteString(fmt.Sprintf("Turns played: %d | Final score: %d", result.TurnsPlayed, result.FinalScore))
	if result.ShutBox {
		b.WriteString(" | SHUT THE BOX!")
	}
	b.WriteString("\n")

	if len(result.Turns) > 0 {
		b.WriteString("\nTurns:\n")
		for _, turn := range result.Turns {
			if turn.Resolved {
				b.WriteString(fmt.Sprintf("%d. rolled %s = %d, closed %s (score %d)\n",
					turn.Turn, formatDice(turn.Dice), turn.Target, formatTiles(turn.Move), turn.ScoreAfter))
			} else {
				b.WriteString(fmt.Sprintf("%d. rolled %s = %d, no legal move\n",
					turn.Turn, formatDice(turn.Dice), turn.Target))
			}
		}
	}

	b.WriteString("\n" + formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Turn History (Page %d/%d) - Total turns: %d\n\n",
		history.Page, history.TotalPages, history.TotalTurns)

	for _, turn := range history.Turns {
		if turn.Resolved {
			result += fmt.Sprintf("%d. rolled %s = %d, closed %s (score %d)\n",
				turn.Turn, formatDice(turn.Dice), turn.Target, formatTiles(turn.Move), turn.ScoreAfter)
		} else {
			result += fmt.Sprintf("%d. rolled %s = %d, no legal move (score %d)\n",
				turn.Turn, formatDice(turn.Dice), turn.Target, turn.ScoreAfter)
		}
	}

	return result
}

// formatTiles renders a tile set as "3+4" for readability
func formatTiles(tiles []int) string {
	if len(tiles) == 0 {
		return "(none)"
	}
	parts := make([]string, len(tiles))
	for i, tile := range tiles {
		parts[i] = fmt.Sprintf("%d", tile)
	}
	return strings.Join(parts, "+")
}

// formatDice renders dice values as "[3 4]"
func formatDice(dice []int) string {
	parts := make([]string, len(dice))
	for i, d := range dice {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
