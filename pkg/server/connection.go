package server

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Connection wraps a single websocket client. Reads are pumped into the
// hub; writes drain the buffered send channel so broadcasts never block
// on a slow client.
type Connection struct {
	ID      uuid.UUID
	ws      *websocket.Conn // The underlying Websocket connection
	hub     *Hub
	send    chan []byte // Buffered channel of outbound messages.
	writeMu sync.Mutex  // Mutex to protect concurrent writes to ws.

	logger *zap.Logger
}

// NewConnection wraps an upgraded websocket
func NewConnection(ws *websocket.Conn, hub *Hub, logger *zap.Logger) *Connection {
	return &Connection{
		ID:     uuid.New(),
		ws:     ws,
		hub:    hub,
		send:   make(chan []byte, 256), // buffered for outgoing messages
		logger: logger,
	}
}

// ReadPump handles inbound messages from the client. When the read loop
// exits for any reason the connection is unregistered, which triggers
// the disconnect cleanup protocol.
func (c *Connection) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.ws.Close()
	}()

	for {
		msgType, msg, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("read error", zap.Error(err))
			}
			break
		}

		// We only handle text
		if msgType != websocket.TextMessage {
			continue
		}

		var inbound InboundEnvelope
		if err := json.Unmarshal(msg, &inbound.Message); err != nil {
			c.logger.Error("failed to parse inbound JSON", zap.Error(err))
			continue
		}
		inbound.Conn = c
		c.hub.inbound <- inbound
	}
}

// WritePump handles outbound messages to the client
func (c *Connection) WritePump() {
	defer func() {
		c.ws.Close()
	}()

	for {
		message, ok := <-c.send
		if !ok {
			// Channel closed
			c.logger.Debug(
				"send channel closed for connection",
				zap.String("connection_id", c.ID.String()),
			)
			return
		}
		c.writeMu.Lock()
		err := c.ws.WriteMessage(websocket.TextMessage, message)
		c.writeMu.Unlock()
		if err != nil {
			c.logger.Error("write error", zap.Error(err))
			return
		}
	}
}

// SendJSON marshals v and enqueues it for delivery. Delivery is
// best-effort: if the client's buffer is full the message is dropped.
func (c *Connection) SendJSON(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Error("error marshaling JSON", zap.Error(err))
		return
	}

	c.enqueue(data)
}

// enqueue pushes raw bytes without blocking. Sending on a closed channel
// is avoided by the hub closing send only after the connection leaves
// every delivery path.
func (c *Connection) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
		c.logger.Warn("dropping message for slow connection",
			zap.String("connection_id", c.ID.String()))
	}
}
