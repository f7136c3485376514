package engine

import "errors"

var (
	// ErrIllegalRollRequest is returned when a roll is requested with the
	// wrong dice count for the current tile state, or while a previous
	// roll is still unresolved.
	ErrIllegalRollRequest = errors.New("illegal roll request")

	// ErrIllegalMove is returned when a submitted tile subset contains a
	// closed or unknown tile, does not sum to the pending target, or no
	// roll is pending.
	ErrIllegalMove = errors.New("illegal move")

	// ErrGameOver is returned for any roll or move attempted after the
	// game reached a terminal state.
	ErrGameOver = errors.New("game over")
)
