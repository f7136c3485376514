package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shutbox/shutbox/game/engine"
	"github.com/shutbox/shutbox/game/policy"
)

// maxAutoPlayTurns bounds a runaway autoplay loop; a nine-tile game cannot
// take more turns than tiles, but the guard keeps a buggy policy from
// spinning forever.
const maxAutoPlayTurns = 64

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for
// consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper short ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Engine.GetState(),
			GameConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Roll draws (or forces) dice for a session and reports the legal moves for
// the resulting target.
func (s *gameServiceImpl) Roll(ctx context.Context, sessionID string, dice int, forced []int) (*RollOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	var roll *engine.RollResult
	if len(forced) > 0 {
		roll, err = sess.Engine.RollForced(forced...)
	} else {
		if dice == 0 {
			dice = 2
		}
		roll, err = sess.Engine.Roll(dice)
	}
	if err != nil {
		return nil, err
	}

	state := sess.Engine.GetState()
	moves := sess.Engine.AvailableMoves()

	events := []GameEvent{{
		Type:      "roll",
		Message:   state.Message,
		Timestamp: time.Now(),
		Target:    roll.Target,
		Tiles:     roll.Dice,
	}}
	if state.GameOver {
		events = append(events, GameEvent{
			Type:      "game_over",
			Message:   s.gameOverMessage(sess, state),
			Timestamp: time.Now(),
		})
	}

	outcome := &RollOutcome{
		Dice:      roll.Dice,
		Target:    roll.Target,
		Turn:      roll.Turn,
		Moves:     moves,
		MoveCount: len(moves),
		GameOver:  state.GameOver,
		GameState: state,
		Message:   state.Message,
		Events:    events,
	}

	// Auto-save session after mutation
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after roll: %v\n", sessionID, err)
	}

	return outcome, nil
}

// ApplyMove closes the chosen tiles against the session's pending target.
func (s *gameServiceImpl) ApplyMove(ctx context.Context, sessionID string, tiles engine.TileSet) (*MoveOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	state, err := sess.Engine.ApplyMove(tiles)
	if err != nil {
		return nil, err
	}

	events := []GameEvent{{
		Type:      "move",
		Message:   state.Message,
		Timestamp: time.Now(),
		Tiles:     tiles,
	}}
	if state.ShutBox {
		events = append(events, GameEvent{
			Type:      "shut_box",
			Message:   state.Message,
			Timestamp: time.Now(),
		})
	} else if state.CanSingleDie && state.SingleDieRule {
		events = append(events, GameEvent{
			Type:      "single_die_unlocked",
			Message:   "Tiles 7-9 closed: one-die rolls are now allowed",
			Timestamp: time.Now(),
		})
	}
	if state.GameOver && !state.ShutBox {
		events = append(events, GameEvent{
			Type:      "game_over",
			Message:   s.gameOverMessage(sess, state),
			Timestamp: time.Now(),
		})
	}

	outcome := &MoveOutcome{
		Applied:   tiles,
		Score:     state.Score,
		ShutBox:   state.ShutBox,
		GameOver:  state.GameOver,
		GameState: state,
		Message:   state.Message,
		Events:    events,
	}

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after move: %v\n", sessionID, err)
	}

	return outcome, nil
}

// AvailableMoves returns the legal moves for the session's pending target.
func (s *gameServiceImpl) AvailableMoves(ctx context.Context, sessionID string) (*MovesResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	state := sess.Engine.GetState()
	if state.PendingTarget == nil {
		return nil, fmt.Errorf("%w: no roll pending", engine.ErrIllegalMove)
	}

	moves := sess.Engine.AvailableMoves()
	return &MovesResult{
		Target:    *state.PendingTarget,
		Moves:     moves,
		MoveCount: len(moves),
		OpenTiles: state.OpenTiles,
	}, nil
}

// AutoPlay plays the session's game to completion with a named policy,
// rolling a single die whenever the rule allows it.
func (s *gameServiceImpl) AutoPlay(ctx context.Context, sessionID, policyName string) (*AutoPlayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	if policyName == "" {
		policyName = "greedy"
	}
	pick, err := policy.ByName(policyName, time.Now().UnixNano())
	if err != nil {
		return nil, err
	}

	eng := sess.Engine
	events := []GameEvent{}
	turnsBefore := len(eng.GetTurnHistory())

	for turns := 0; !eng.IsGameOver() && turns < maxAutoPlayTurns; turns++ {
		// Resolve a pending roll left by a previous manual call first
		if !eng.HasPendingTarget() {
			dice := 2
			if eng.CanUseSingleDie() {
				dice = 1
			}
			roll, err := eng.Roll(dice)
			if err != nil {
				return nil, fmt.Errorf("autoplay roll failed: %w", err)
			}
			events = append(events, GameEvent{
				Type:      "roll",
				Message:   eng.GetState().Message,
				Timestamp: time.Now(),
				Target:    roll.Target,
				Tiles:     roll.Dice,
			})
		}
		if eng.IsGameOver() {
			break
		}

		move := pick(eng.GetState(), eng.AvailableMoves())
		if _, err := eng.ApplyMove(move); err != nil {
			return nil, fmt.Errorf("autoplay move %v rejected: %w", move, err)
		}
		events = append(events, GameEvent{
			Type:      "move",
			Message:   eng.GetState().Message,
			Timestamp: time.Now(),
			Tiles:     move,
		})
	}

	state := eng.GetState()
	events = append(events, GameEvent{
		Type:      "game_over",
		Message:   s.gameOverMessage(sess, state),
		Timestamp: time.Now(),
	})

	history := eng.GetTurnHistory()

	result := &AutoPlayResult{
		Policy:      policyName,
		TurnsPlayed: len(history) - turnsBefore,
		FinalScore:  state.Score,
		ShutBox:     state.ShutBox,
		GameState:   state,
		Turns:       history[turnsBefore:],
		Events:      events,
	}

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after autoplay: %v\n", sessionID, err)
	}

	return result, nil
}

// Reset resets a session's game
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	state := sess.Engine.Reset()

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after reset: %v\n", sessionID, err)
	}

	return state, nil
}

// GetGameState returns the current snapshot for a session
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return sess.Engine.GetState(), nil
}

// GetTurnHistory returns paginated turn history for a session
func (s *gameServiceImpl) GetTurnHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	history := sess.Engine.GetTurnHistory()

	// Normalize options
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 20
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	total := len(history)
	ordered := make([]engine.TurnEntry, total)
	if opts.Order == "desc" {
		for i, entry := range history {
			ordered[total-1-i] = entry
		}
	} else {
		copy(ordered, history)
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}

	return &HistoryResponse{
		Turns:       ordered[start:end],
		TotalTurns:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns all available board configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a board configuration by name
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a board configuration
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// gameOverMessage renders the configured game-over line with the final
// score, falling back to a plain default when the config omits it.
func (s *gameServiceImpl) gameOverMessage(sess *Session, state *engine.GameState) string {
	if sess.Config != nil && sess.Config.Messages.GameOver != "" {
		return fmt.Sprintf(sess.Config.Messages.GameOver, state.Score)
	}
	return fmt.Sprintf("Game over! Final score: %d", state.Score)
}
