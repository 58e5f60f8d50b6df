package server

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cvasile/chess-arena/pkg/messages"
)

// RoomBroadcaster associates connections with session rooms and fans
// events out to them. It implements the game.Broadcaster port. Delivery
// is at-most-once and best-effort; per-connection ordering holds because
// each connection drains a single send channel.
type RoomBroadcaster struct {
	mu     sync.RWMutex
	rooms  map[uuid.UUID]map[*Connection]struct{}
	logger *zap.Logger
}

// NewRoomBroadcaster creates an empty broadcaster
func NewRoomBroadcaster(logger *zap.Logger) *RoomBroadcaster {
	return &RoomBroadcaster{
		rooms:  make(map[uuid.UUID]map[*Connection]struct{}),
		logger: logger,
	}
}

// Join adds the connection to the session's delivery group.
func (b *RoomBroadcaster) Join(sessionID uuid.UUID, conn *Connection) {
	b.mu.Lock()
	defer b.mu.Unlock()

	room, ok := b.rooms[sessionID]
	if !ok {
		room = make(map[*Connection]struct{})
		b.rooms[sessionID] = room
	}
	room[conn] = struct{}{}
}

// Leave removes the connection from one room. No-op if absent.
func (b *RoomBroadcaster) Leave(sessionID uuid.UUID, conn *Connection) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if room, ok := b.rooms[sessionID]; ok {
		delete(room, conn)
		if len(room) == 0 {
			delete(b.rooms, sessionID)
		}
	}
}

// LeaveAll removes the connection from every room. Used on disconnect.
func (b *RoomBroadcaster) LeaveAll(conn *Connection) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, room := range b.rooms {
		delete(room, conn)
		if len(room) == 0 {
			delete(b.rooms, id)
		}
	}
}

// CloseRoom tears down a session's delivery group entirely.
func (b *RoomBroadcaster) CloseRoom(sessionID uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.rooms, sessionID)
}

// Emit delivers the event to every connection joined to the session's
// room.
func (b *RoomBroadcaster) Emit(sessionID uuid.UUID, event string, payload any) {
	data, err := json.Marshal(messages.OutboundMessage{
		Event:   event,
		Payload: payload,
	})
	if err != nil {
		b.logger.Error("error marshaling broadcast", zap.Error(err))
		return
	}

	b.mu.RLock()
	conns := make([]*Connection, 0, len(b.rooms[sessionID]))
	for conn := range b.rooms[sessionID] {
		conns = append(conns, conn)
	}
	b.mu.RUnlock()

	for _, conn := range conns {
		conn.enqueue(data)
	}
}

// EmitToConnection is the unicast path for per-requester responses that
// must not leak to the other participant.
func (b *RoomBroadcaster) EmitToConnection(conn *Connection, event string, payload any) {
	conn.SendJSON(messages.OutboundMessage{
		Event:   event,
		Payload: payload,
	})
}
