// Package game owns the per-pair session state machines and the
// directory that maps players to them.
package game

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cvasile/chess-arena/pkg/events"
)

// Directory owns the set of active sessions and the player-name index.
// All mutation of a session goes through the directory so membership
// changes and session state change atomically under one lock. Broadcast
// delivery always happens after the lock is released.
type Directory struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session
	byPlayer map[string]uuid.UUID

	validator   MoveValidator
	broadcaster Broadcaster
	publisher   *events.Publisher
	logger      *zap.Logger
}

// NewDirectory creates an empty directory. The validator decides move
// legality; pass BoundsValidator{} for the shallow default.
func NewDirectory(
	validator MoveValidator,
	broadcaster Broadcaster,
	publisher *events.Publisher,
	logger *zap.Logger,
) *Directory {
	return &Directory{
		sessions:    make(map[uuid.UUID]*session),
		byPlayer:    make(map[string]uuid.UUID),
		validator:   validator,
		broadcaster: broadcaster,
		publisher:   publisher,
		logger:      logger,
	}
}

// CreateSession starts an active session between the two players. The
// first name plays white and moves first. Matchmaking guarantees neither
// player is in a session, but the check is re-validated here.
func (d *Directory) CreateSession(playerWhite, playerBlack string) (State, error) {
	d.mu.Lock()

	if _, ok := d.byPlayer[playerWhite]; ok {
		d.mu.Unlock()
		return State{}, ErrAlreadyInSession
	}
	if _, ok := d.byPlayer[playerBlack]; ok {
		d.mu.Unlock()
		return State{}, ErrAlreadyInSession
	}

	s := newSession(uuid.New(), playerWhite, playerBlack)
	d.sessions[s.id] = s
	d.byPlayer[playerWhite] = s.id
	d.byPlayer[playerBlack] = s.id
	state := s.snapshot()

	d.mu.Unlock()

	d.logger.Info("session created",
		zap.String("session_id", state.GameID),
		zap.String("white", playerWhite),
		zap.String("black", playerBlack))

	d.publisher.Publish(events.Event{
		Type:      events.EventSessionCreated,
		SessionID: state.GameID,
		Payload:   state,
	})

	return state, nil
}

// Get returns a snapshot of the session with the given id.
func (d *Directory) Get(id uuid.UUID) (State, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.sessions[id]
	if !ok {
		return State{}, ErrNotFound
	}
	return s.snapshot(), nil
}

// SessionOf returns a snapshot of the session the player occupies.
func (d *Directory) SessionOf(player string) (State, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id, ok := d.byPlayer[player]
	if !ok {
		return State{}, ErrNotInSession
	}
	return d.sessions[id].snapshot(), nil
}

// ApplyMove validates and applies a move by player in the given session.
// The turn check and the mutation happen under one critical section, so
// of two racing moves at most one succeeds and the other fails with
// ErrWrongTurn.
func (d *Directory) ApplyMove(id uuid.UUID, player string, from, to Position) (State, error) {
	d.mu.Lock()

	s, ok := d.sessions[id]
	if !ok {
		d.mu.Unlock()
		return State{}, ErrNotFound
	}
	if s.status == StatusPaused {
		d.mu.Unlock()
		return State{}, ErrSessionPaused
	}
	if s.playerFor(s.turn) != player {
		d.mu.Unlock()
		return State{}, ErrWrongTurn
	}
	if err := d.validator.Validate(s.snapshot(), from, to); err != nil {
		d.mu.Unlock()
		return State{}, err
	}

	s.applyMove(from, to)
	state := s.snapshot()

	d.mu.Unlock()

	d.logger.Info("move applied",
		zap.String("session_id", state.GameID),
		zap.String("player", player),
		zap.Int("move_count", state.MoveCount))

	d.publisher.Publish(events.Event{
		Type:      events.EventMoveApplied,
		SessionID: state.GameID,
		Payload:   state,
	})

	return state, nil
}

// Forfeit ends the forfeiter's session with the opponent declared
// winner. The room is notified and the session removed.
func (d *Directory) Forfeit(forfeiter string) (State, error) {
	d.mu.Lock()

	id, ok := d.byPlayer[forfeiter]
	if !ok {
		d.mu.Unlock()
		return State{}, ErrNotInSession
	}
	s := d.sessions[id]

	winner := s.opponentOf(forfeiter)
	s.status = StatusFinished
	s.winner = winner
	state := s.snapshot()
	d.removeLocked(s)

	d.mu.Unlock()

	d.finish(id, state, GameEndedPayload{
		Winner:    winner,
		Reason:    "forfeit",
		Forfeiter: forfeiter,
	})

	return state, nil
}

// EndSession finishes and removes a session, announcing the winner to
// its room. Idempotent: a second call returns ErrNotFound without
// emitting anything.
func (d *Directory) EndSession(id uuid.UUID, winner, reason string) error {
	d.mu.Lock()

	s, ok := d.sessions[id]
	if !ok {
		d.mu.Unlock()
		return ErrNotFound
	}

	s.status = StatusFinished
	s.winner = winner
	state := s.snapshot()
	d.removeLocked(s)

	d.mu.Unlock()

	d.finish(id, state, GameEndedPayload{Winner: winner, Reason: reason})

	return nil
}

// HandleDisconnect pauses the session the player occupies, if any, and
// notifies the room. The session and both name mappings stay in place,
// so the remaining player cannot be matched again; a paused session is
// reclaimed only by forfeit or process restart.
func (d *Directory) HandleDisconnect(player string) (State, bool) {
	d.mu.Lock()

	id, ok := d.byPlayer[player]
	if !ok {
		d.mu.Unlock()
		return State{}, false
	}
	s := d.sessions[id]
	if s.status == StatusActive {
		s.status = StatusPaused
	}
	state := s.snapshot()

	d.mu.Unlock()

	d.logger.Warn("session paused on disconnect, no resume path exists",
		zap.String("session_id", state.GameID),
		zap.String("player", player))

	d.broadcaster.Emit(id, "player_disconnected", PlayerDisconnectedPayload{
		Player:     player,
		GameStatus: StatusPaused,
	})

	d.publisher.Publish(events.Event{
		Type:      events.EventSessionPaused,
		SessionID: state.GameID,
		Payload:   state,
	})

	return state, true
}

// ActiveCount returns the number of sessions in the directory.
func (d *Directory) ActiveCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sessions)
}

// removeLocked drops the session and both player mappings. Caller holds
// the directory lock.
func (d *Directory) removeLocked(s *session) {
	delete(d.byPlayer, s.playerWhite)
	delete(d.byPlayer, s.playerBlack)
	delete(d.sessions, s.id)
}

// finish emits the termination event, closes the room and publishes the
// lifecycle event. Runs outside the directory lock.
func (d *Directory) finish(id uuid.UUID, state State, payload GameEndedPayload) {
	d.logger.Info("session ended",
		zap.String("session_id", state.GameID),
		zap.String("winner", payload.Winner),
		zap.String("reason", payload.Reason))

	d.broadcaster.Emit(id, "game_ended", payload)
	d.broadcaster.CloseRoom(id)

	d.publisher.Publish(events.Event{
		Type:      events.EventSessionEnded,
		SessionID: state.GameID,
		Payload:   payload,
	})
}
