package messages

import "github.com/cvasile/chess-arena/pkg/game"

// OutboundMessage is how we wrap responses before sending
// them to the client
type OutboundMessage struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Outbound event names. game_ended and player_disconnected are emitted
// by the session directory and named there.
const (
	EventConnectionResponse  = "connection_response"
	EventRegistrationSuccess = "registration_success"
	EventWaitingForOpponent  = "waiting_for_opponent"
	EventGameStarted         = "game_started"
	EventMoveUpdate          = "move_update"
	EventError               = "error"
)

// ConnectionResponsePayload greets a freshly opened connection
type ConnectionResponsePayload struct {
	Status    string `json:"status"`
	SessionID string `json:"session_id"`
}

// RegistrationSuccessPayload confirms the sanitized name
type RegistrationSuccessPayload struct {
	Name string `json:"name"`
}

// WaitingForOpponentPayload tells the requester they were enqueued
type WaitingForOpponentPayload struct {
	Message string `json:"message"`
}

// MoveUpdatePayload broadcasts an accepted move to the room
type MoveUpdatePayload struct {
	Type      string          `json:"type"`
	GameState game.State      `json:"game_state"`
	Move      MakeMovePayload `json:"move"`
}

// MoveMade is the discriminator clients switch on inside move_update
const MoveMade = "move_made"

// ErrorPayload is the unicast error surface; it never reaches the
// other participant
type ErrorPayload struct {
	Message string `json:"message"`
}
