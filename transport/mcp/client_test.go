package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shutbox/shutbox/game/engine"
	"github.com/shutbox/shutbox/game/service"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"id":        "test-session",
		"score":     45,
		"game_over": false,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_JSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "illegal move: tiles sum to 3, target is 7"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("POST", "/api/sessions/abc1/move", map[string]interface{}{"tiles": []int{1, 2}}, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 409 response")
	}

	if !strings.Contains(err.Error(), "illegal move") {
		t.Errorf("Expected server error message to pass through, got: %v", err)
	}
}

func TestClient_createSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}

		config := engine.DefaultGameConfig()
		resp := service.SessionInfo{
			ID:         "test-session-123",
			ConfigName: "classic",
			GameState:  engine.InitGameStateFromConfig(config),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "create_session",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleCreateSession(ctx, request)
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "test-session-123") {
		t.Errorf("Expected session ID in result, got: %s", resultStr.Text)
	}
}

func TestClient_rollDice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions/abc1/roll" {
			t.Errorf("Expected POST /api/sessions/abc1/roll, got %s %s", r.Method, r.URL.Path)
		}

		config := engine.DefaultGameConfig()
		state := engine.InitGameStateFromConfig(config)
		target := 7
		state.PendingTarget = &target
		state.LastDice = []int{3, 4}

		resp := service.RollOutcome{
			Dice:      []int{3, 4},
			Target:    7,
			Turn:      1,
			Moves:     []engine.TileSet{{1, 2, 4}, {1, 6}, {2, 5}, {3, 4}, {7}},
			MoveCount: 5,
			GameState: state,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "roll_dice",
			Arguments: map[string]interface{}{"session_id": "abc1"},
		},
	}

	result, err := client.handleRollDice(ctx, request)
	if err != nil {
		t.Fatalf("rollDice failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "Rolled [3 4] = 7") {
		t.Errorf("Expected roll summary, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "3+4") {
		t.Errorf("Expected moves in result, got: %s", resultStr.Text)
	}
}

func TestClient_applyMove(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Tiles []int `json:"tiles"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Tiles) != 2 || req.Tiles[0] != 3 || req.Tiles[1] != 4 {
			t.Errorf("Expected tiles [3 4], got %v", req.Tiles)
		}

		config := engine.DefaultGameConfig()
		state := engine.InitGameStateFromConfig(config)
		state.Tiles[3] = false
		state.Tiles[4] = false
		state.Score = 38

		resp := service.MoveOutcome{
			Applied:   engine.TileSet{3, 4},
			Score:     38,
			GameState: state,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "apply_move",
			Arguments: map[string]interface{}{
				"session_id": "abc1",
				"tiles":      []interface{}{float64(3), float64(4)},
			},
		},
	}

	result, err := client.handleApplyMove(ctx, request)
	if err != nil {
		t.Fatalf("applyMove failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "Closed tiles 3+4") {
		t.Errorf("Expected move summary, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "Score: 38") {
		t.Errorf("Expected updated score, got: %s", resultStr.Text)
	}
}

func TestFormatGameState(t *testing.T) {
	config := engine.DefaultGameConfig()
	state := engine.InitGameStateFromConfig(config)
	state.Message = "Welcome to Shut the Box!"

	result := formatGameState(state)

	expectedFields := []string{
		"Tiles: 1 2 3 4 5 6 7 8 9",
		"Score: 45",
		"Welcome to Shut the Box!",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatGameState_ClosedTiles(t *testing.T) {
	config := engine.DefaultGameConfig()
	state := engine.InitGameStateFromConfig(config)
	state.Tiles[3] = false
	state.Tiles[7] = false

	result := formatGameState(state)

	if !strings.Contains(result, "Tiles: 1 2 - 4 5 6 - 8 9") {
		t.Errorf("Expected closed tiles rendered as dashes, got: %s", result)
	}
}

func TestFormatGameState_GameOver(t *testing.T) {
	config := engine.DefaultGameConfig()
	state := engine.InitGameStateFromConfig(config)
	state.GameOver = true
	state.Score = 12

	result := formatGameState(state)

	if !strings.Contains(result, "GAME OVER - Final score: 12") {
		t.Errorf("Expected game over line, got: %s", result)
	}
}

func TestFormatGameState_ShutBox(t *testing.T) {
	config := engine.DefaultGameConfig()
	state := engine.InitGameStateFromConfig(config)
	for tile := 1; tile <= 9; tile++ {
		state.Tiles[tile] = false
	}
	state.Score = 0
	state.GameOver = true
	state.ShutBox = true

	result := formatGameState(state)

	if !strings.Contains(result, "SHUT THE BOX!") {
		t.Errorf("Expected shut box line, got: %s", result)
	}
}

func TestFormatTiles(t *testing.T) {
	tests := []struct {
		tiles []int
		want  string
	}{
		{[]int{3, 4}, "3+4"},
		{[]int{7}, "7"},
		{[]int{1, 2, 4}, "1+2+4"},
		{nil, "(none)"},
	}

	for _, tt := range tests {
		if got := formatTiles(tt.tiles); got != tt.want {
			t.Errorf("formatTiles(%v) = %q, want %q", tt.tiles, got, tt.want)
		}
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "game_instructions",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleGameInstructions(ctx, request)
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedContent := []string{
		"Shut the Box - Complete Instructions",
		"GAME OBJECTIVE:",
		"TURN FLOW:",
		"SINGLE-DIE RULE:",
		"STRATEGY NOTES:",
		"SCORING:",
		"SESSION MANAGEMENT:",
		"CONFIGURATION OPTIONS:",
	}

	for _, content := range expectedContent {
		if !strings.Contains(resultStr.Text, content) {
			t.Errorf("Expected '%s' in instructions, got: %s", content, resultStr.Text)
		}
	}
}

func TestClient_Integration(t *testing.T) {
	client := NewClient("http://localhost:8080")

	if client == nil {
		t.Fatal("Failed to create client")
	}

	if client.mcpServer == nil {
		t.Fatal("MCP server not initialized")
	}

	if client.baseURL == "" {
		t.Error("Base URL not set")
	}

	if client.httpClient == nil {
		t.Error("HTTP client not initialized")
	}
}
