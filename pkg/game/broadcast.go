package game

import "github.com/google/uuid"

// Broadcaster is the delivery port the directory emits through. The
// concrete implementation lives with the transport; tests substitute a
// recording fake so session logic runs without a live socket.
type Broadcaster interface {
	// Emit delivers the event to every connection joined to the
	// session's room. Best-effort, at-most-once.
	Emit(sessionID uuid.UUID, event string, payload any)
	// CloseRoom tears down the session's delivery group.
	CloseRoom(sessionID uuid.UUID)
}

// GameEndedPayload announces a finished session to its room.
type GameEndedPayload struct {
	Winner    string `json:"winner"`
	Reason    string `json:"reason"`
	Forfeiter string `json:"forfeiter,omitempty"`
}

// PlayerDisconnectedPayload tells the remaining participant the session
// was paused.
type PlayerDisconnectedPayload struct {
	Player     string `json:"player"`
	GameStatus Status `json:"game_status"`
}
