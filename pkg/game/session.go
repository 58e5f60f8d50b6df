package game

import (
	"github.com/google/uuid"

	"github.com/cvasile/chess-arena/internal/color"
)

// Status is the lifecycle state of a session. Transitions are monotone:
// active sessions pause on disconnect or finish, paused sessions only
// finish. There is no resume path.
type Status string

// Session lifecycle states. StatusWaiting is the conceptual pre-pairing
// state; matchmaking creates sessions directly as active, so a stored
// session never carries it.
const (
	StatusWaiting  Status = "waiting"
	StatusActive   Status = "active"
	StatusPaused   Status = "paused"
	StatusFinished Status = "finished"
)

// session is the per-pair state machine. It is owned exclusively by the
// Directory and never leaves it by reference; callers see State copies.
type session struct {
	id          uuid.UUID
	playerWhite string
	playerBlack string
	status      Status
	turn        color.Color
	moveCount   int
	winner      string
	board       *Board
}

// State is the full session snapshot broadcast to clients.
type State struct {
	GameID      string      `json:"game_id"`
	PlayerWhite string      `json:"player_white"`
	PlayerBlack string      `json:"player_black"`
	Status      Status      `json:"status"`
	Turn        color.Color `json:"turn"`
	MoveCount   int         `json:"move_count"`
	Winner      string      `json:"winner"`
	Board       Board       `json:"board_snapshot"`
}

// newSession starts an active session with white to move and the
// standard starting layout.
func newSession(id uuid.UUID, playerWhite, playerBlack string) *session {
	return &session{
		id:          id,
		playerWhite: playerWhite,
		playerBlack: playerBlack,
		status:      StatusActive,
		turn:        color.White,
		board:       NewBoard(),
	}
}

func (s *session) playerFor(c color.Color) string {
	if c == color.White {
		return s.playerWhite
	}
	return s.playerBlack
}

// opponentOf returns the other participant's name, or "" if the player
// is not part of this session.
func (s *session) opponentOf(player string) string {
	switch player {
	case s.playerWhite:
		return s.playerBlack
	case s.playerBlack:
		return s.playerWhite
	default:
		return ""
	}
}

// applyMove mutates the session for an accepted move. Callers hold the
// directory lock and have already verified status, turn and legality.
func (s *session) applyMove(from, to Position) {
	s.board.MovePiece(s.turn, from, to)
	s.moveCount++
	s.turn = s.turn.Opp()
}

// snapshot returns a deep copy safe to hand outside the directory.
func (s *session) snapshot() State {
	return State{
		GameID:      s.id.String(),
		PlayerWhite: s.playerWhite,
		PlayerBlack: s.playerBlack,
		Status:      s.status,
		Turn:        s.turn,
		MoveCount:   s.moveCount,
		Winner:      s.winner,
		Board:       s.board.clone(),
	}
}
