package game

import "errors"

// Errors surfaced by session and directory operations. The connection
// layer maps each one to a unicast error event; none of them is fatal.
var (
	// ErrAlreadyInSession means the player already occupies a session
	ErrAlreadyInSession = errors.New("already in a game")
	// ErrNotFound means the session id is unknown or already removed
	ErrNotFound = errors.New("game not found")
	// ErrNotInSession means the player has no current session
	ErrNotInSession = errors.New("not in a game")
	// ErrWrongTurn means the acting player does not hold the turn
	ErrWrongTurn = errors.New("not your turn")
	// ErrOutOfBounds means a move position lies outside the board
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrSessionPaused means the session stopped accepting moves after
	// a participant disconnected
	ErrSessionPaused = errors.New("game is paused")
)
