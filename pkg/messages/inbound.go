// Package messages defines the wire protocol envelopes and payloads
package messages

import (
	"encoding/json"

	"github.com/cvasile/chess-arena/pkg/game"
)

// InboundMessage is the generic wrapper for messages coming from the
// client. The "event" field tells us the action; "payload" is the data
// we parse further.
type InboundMessage struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Inbound event names
const (
	EventRegisterPlayer = "register_player"
	EventFindGame       = "find_game"
	EventMakeMove       = "make_move"
	EventForfeitGame    = "forfeit_game"
)

// RegisterPlayerPayload carries the requested display name
type RegisterPlayerPayload struct {
	Name string `json:"name"`
}

// MakeMovePayload represents the payload for making a move during a game.
// Positions travel as [x, y] arrays.
type MakeMovePayload struct {
	GameID  string        `json:"game_id"`
	FromPos game.Position `json:"from_pos"`
	ToPos   game.Position `json:"to_pos"`
}
