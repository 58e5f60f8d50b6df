// Package server hosts the websocket hub, connections and room
// broadcasting.
package server

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cvasile/chess-arena/pkg/events"
	"github.com/cvasile/chess-arena/pkg/game"
	"github.com/cvasile/chess-arena/pkg/matchmaking"
	"github.com/cvasile/chess-arena/pkg/messages"
	"github.com/cvasile/chess-arena/pkg/registry"
)

// InboundEnvelope pairs an inbound message with the connection that
// sent it
type InboundEnvelope struct {
	Conn    *Connection             // who sent it
	Message messages.InboundMessage // decoded wrapper, payload still raw
}

// Hub keeps track of all active connections and routes their events to
// the registry, match queue and session directory in that order. Inbound
// events drain from a single channel, so handling is serialized; the
// stores stay internally synchronized regardless.
type Hub struct {
	mu          sync.RWMutex               // Protects the connection maps.
	connections map[*Connection]bool       // Registered connections
	connByID    map[uuid.UUID]*Connection  // Lookup for pairing the opponent

	register   chan *Connection     // Incoming registration
	unregister chan *Connection     // Incoming unregistration
	inbound    chan InboundEnvelope // Inbound events to route
	done       chan struct{}

	players   *registry.Registry
	queue     *matchmaking.Queue
	directory *game.Directory
	rooms     *RoomBroadcaster
	publisher *events.Publisher
	logger    *zap.Logger
}

// NewHub creates a new hub
func NewHub(
	players *registry.Registry,
	queue *matchmaking.Queue,
	directory *game.Directory,
	rooms *RoomBroadcaster,
	publisher *events.Publisher,
	logger *zap.Logger,
) *Hub {
	return &Hub{
		connections: make(map[*Connection]bool),
		connByID:    make(map[uuid.UUID]*Connection),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		inbound:     make(chan InboundEnvelope),
		done:        make(chan struct{}),
		players:     players,
		queue:       queue,
		directory:   directory,
		rooms:       rooms,
		publisher:   publisher,
		logger:      logger,
	}
}

// Run is the main execution of the hub
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.registerConnection(conn)

		case conn := <-h.unregister:
			h.unregisterConnection(conn)

		case msg := <-h.inbound:
			h.handleInbound(msg)

		case <-h.done:
			return
		}
	}
}

// Register hands a new connection to the hub
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister asks the hub to run the disconnect protocol for conn
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// ConnectionCount returns the number of live connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Shutdown stops the routing loop and closes every live connection.
func (h *Hub) Shutdown() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.connections {
		conn.ws.Close()
	}
}

func (h *Hub) registerConnection(conn *Connection) {
	h.mu.Lock()
	h.connections[conn] = true
	h.connByID[conn.ID] = conn
	total := len(h.connections)
	h.mu.Unlock()

	h.logger.Info("connection registered",
		zap.String("connection_id", conn.ID.String()),
		zap.Int("total", total))

	h.rooms.EmitToConnection(conn, messages.EventConnectionResponse,
		messages.ConnectionResponsePayload{
			Status:    "connected",
			SessionID: conn.ID.String(),
		})
}

// unregisterConnection runs the disconnect protocol: drop the identity,
// drop a pending queue entry, pause any occupied session, leave all
// rooms. Already-removed state is treated as a benign no-op.
func (h *Hub) unregisterConnection(conn *Connection) {
	h.mu.Lock()
	if _, ok := h.connections[conn]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.connections, conn)
	delete(h.connByID, conn.ID)
	total := len(h.connections)
	h.mu.Unlock()

	if name, err := h.players.Unregister(conn.ID); err == nil {
		h.queue.RemoveIfWaiting(name)
		h.directory.HandleDisconnect(name)
	}

	h.rooms.LeaveAll(conn)
	close(conn.send)

	h.logger.Info("connection unregistered",
		zap.String("connection_id", conn.ID.String()),
		zap.Int("total", total))

	h.publisher.Publish(events.Event{
		Type: events.EventConnectionClosed,
		Payload: map[string]string{
			"connection_id": conn.ID.String(),
		},
	})
}

// handleInbound decodes and routes one event from a client.
func (h *Hub) handleInbound(msg InboundEnvelope) {
	switch msg.Message.Event {
	case messages.EventRegisterPlayer:
		h.handleRegisterPlayer(msg)
	case messages.EventFindGame:
		h.handleFindGame(msg.Conn)
	case messages.EventMakeMove:
		h.handleMakeMove(msg)
	case messages.EventForfeitGame:
		h.handleForfeit(msg.Conn)
	default:
		h.sendError(msg.Conn, "Unknown message type")
	}
}

func (h *Hub) handleRegisterPlayer(msg InboundEnvelope) {
	var payload messages.RegisterPlayerPayload
	if err := json.Unmarshal(msg.Message.Payload, &payload); err != nil {
		h.sendError(msg.Conn, "Invalid register_player payload")
		return
	}

	name, err := h.players.Register(msg.Conn.ID, payload.Name)
	if err != nil {
		h.sendErrorFor(msg.Conn, err)
		return
	}

	h.publisher.Publish(events.Event{
		Type:    events.EventPlayerRegistered,
		Payload: map[string]string{"player": name},
	})

	h.rooms.EmitToConnection(msg.Conn, messages.EventRegistrationSuccess,
		messages.RegistrationSuccessPayload{Name: name})
}

func (h *Hub) handleFindGame(conn *Connection) {
	name, err := h.players.Lookup(conn.ID)
	if err != nil {
		h.sendErrorFor(conn, err)
		return
	}

	if _, err := h.directory.SessionOf(name); err == nil {
		h.sendErrorFor(conn, game.ErrAlreadyInSession)
		return
	}

	opponent, paired := h.queue.RequestMatch(name)
	if !paired {
		h.rooms.EmitToConnection(conn, messages.EventWaitingForOpponent,
			messages.WaitingForOpponentPayload{Message: "Waiting for an opponent..."})
		return
	}

	// The player who waited longest takes white and the first move.
	state, err := h.directory.CreateSession(opponent, name)
	if err != nil {
		h.sendErrorFor(conn, err)
		return
	}

	sessionID, err := uuid.Parse(state.GameID)
	if err != nil {
		h.logger.Error("invalid session id", zap.Error(err))
		return
	}

	h.rooms.Join(sessionID, conn)
	if oppConn, ok := h.connectionFor(opponent); ok {
		h.rooms.Join(sessionID, oppConn)
	}

	h.rooms.Emit(sessionID, messages.EventGameStarted, state)
}

func (h *Hub) handleMakeMove(msg InboundEnvelope) {
	name, err := h.players.Lookup(msg.Conn.ID)
	if err != nil {
		h.sendErrorFor(msg.Conn, err)
		return
	}

	var payload messages.MakeMovePayload
	if err := json.Unmarshal(msg.Message.Payload, &payload); err != nil {
		h.sendError(msg.Conn, "Invalid make_move payload")
		return
	}

	sessionID, err := uuid.Parse(payload.GameID)
	if err != nil {
		h.sendErrorFor(msg.Conn, game.ErrNotFound)
		return
	}

	state, err := h.directory.ApplyMove(sessionID, name, payload.FromPos, payload.ToPos)
	if err != nil {
		h.sendErrorFor(msg.Conn, err)
		return
	}

	h.rooms.Emit(sessionID, messages.EventMoveUpdate, messages.MoveUpdatePayload{
		Type:      messages.MoveMade,
		GameState: state,
		Move:      payload,
	})
}

func (h *Hub) handleForfeit(conn *Connection) {
	name, err := h.players.Lookup(conn.ID)
	if err != nil {
		h.sendErrorFor(conn, err)
		return
	}

	// The directory announces game_ended to the room and closes it.
	if _, err := h.directory.Forfeit(name); err != nil {
		h.sendErrorFor(conn, err)
	}
}

func (h *Hub) connectionFor(player string) (*Connection, bool) {
	connID, ok := h.players.ConnectionOf(player)
	if !ok {
		return nil, false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	conn, ok := h.connByID[connID]
	return conn, ok
}

// sendErrorFor maps a domain error to the client-facing message.
func (h *Hub) sendErrorFor(conn *Connection, err error) {
	h.sendError(conn, clientMessage(err))
}

func (h *Hub) sendError(conn *Connection, msg string) {
	h.rooms.EmitToConnection(conn, messages.EventError,
		messages.ErrorPayload{Message: msg})
}

// clientMessage keeps the wire wording stable regardless of how the
// sentinel errors are phrased internally.
func clientMessage(err error) string {
	switch {
	case errors.Is(err, registry.ErrNotRegistered):
		return "Player not registered"
	case errors.Is(err, registry.ErrInvalidName):
		return "Invalid player name"
	case errors.Is(err, registry.ErrNameTaken):
		return "Name already in use"
	case errors.Is(err, game.ErrAlreadyInSession):
		return "Already in a game"
	case errors.Is(err, game.ErrNotFound):
		return "Game not found"
	case errors.Is(err, game.ErrWrongTurn):
		return "Not your turn"
	case errors.Is(err, game.ErrOutOfBounds):
		return "Invalid move"
	case errors.Is(err, game.ErrNotInSession):
		return "Not in a game"
	case errors.Is(err, game.ErrSessionPaused):
		return "Game is paused"
	default:
		return err.Error()
	}
}
