// Package hub fans chat state out to every connected WebSocket client.
package hub

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/riyan-hx/Lumid.ai/internal/domain"
	"github.com/riyan-hx/Lumid.ai/internal/protocol"
)

// ErrBufferFull is returned when a connection's send buffer is full.
var ErrBufferFull = errors.New("send buffer full")

// ErrConnectionClosed is returned when sending to an unregistered connection.
var ErrConnectionClosed = errors.New("connection closed")

const sendBufferSize = 256

// Connection represents a single WebSocket connection.
type Connection struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
	mu   sync.Mutex
}

// Hub manages all WebSocket connections. Run must be started before use.
type Hub struct {
	connections map[string]*Connection

	unregister chan *Connection
	broadcast  chan []byte
	done       chan struct{}
	stopped    bool

	log *slog.Logger
	mu  sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		connections: make(map[string]*Connection),
		unregister:  make(chan *Connection),
		broadcast:   make(chan []byte, sendBufferSize),
		done:        make(chan struct{}),
		log:         log,
	}
}

// Run starts the hub's main loop. It returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.unregister:
			h.remove(conn)

		case data := <-h.broadcast:
			var slow []*Connection
			h.mu.RLock()
			for _, conn := range h.connections {
				select {
				case conn.Send <- data:
				default:
					slow = append(slow, conn)
				}
			}
			h.mu.RUnlock()
			for _, conn := range slow {
				h.log.Warn("connection buffer full, closing", "conn_id", conn.ID)
				h.remove(conn)
			}

		case <-h.done:
			h.mu.Lock()
			h.stopped = true
			for id, conn := range h.connections {
				delete(h.connections, id)
				close(conn.Send)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop ends Run and closes every connection's send channel.
func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) remove(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[conn.ID]; ok {
		delete(h.connections, conn.ID)
		close(conn.Send)
		h.log.Debug("connection unregistered", "conn_id", conn.ID)
	}
}

// NewConnection wraps a WebSocket in a connection. It is not registered yet.
func (h *Hub) NewConnection(ws *websocket.Conn) *Connection {
	return &Connection{
		ID:   uuid.New().String(),
		Conn: ws,
		Send: make(chan []byte, sendBufferSize),
	}
}

// Register adds a connection to the broadcast set. Registering after Stop
// closes the connection's send channel immediately.
func (h *Hub) Register(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		close(conn.Send)
		return
	}
	h.connections[conn.ID] = conn
	h.log.Debug("connection registered", "conn_id", conn.ID)
}

// Unregister unregisters a connection from the hub.
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Broadcast queues data for every connection.
func (h *Hub) Broadcast(data []byte) {
	select {
	case h.broadcast <- data:
	case <-h.done:
	}
}

// BroadcastJSON queues a JSON message for every connection.
func (h *Hub) BroadcastJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(data)
	return nil
}

// Publish broadcasts a state message built from the snapshot.
func (h *Hub) Publish(snap domain.StateSnapshot) {
	if err := h.BroadcastJSON(protocol.NewState(snap)); err != nil {
		h.log.Error("failed to encode state", "error", err)
	}
}

// SendToConnection queues data for one registered connection.
func (h *Hub) SendToConnection(conn *Connection, data []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.connections[conn.ID]; !ok {
		return ErrConnectionClosed
	}
	select {
	case conn.Send <- data:
		return nil
	default:
		return ErrBufferFull
	}
}

// SendJSONToConnection queues a JSON message for one connection.
func (h *Hub) SendJSONToConnection(conn *Connection, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return h.SendToConnection(conn, data)
}

// ConnectionCount returns the number of registered connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// WriteMessage writes a message to the connection with proper locking.
func (c *Connection) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// SetWriteDeadline sets the write deadline for the connection.
func (c *Connection) SetWriteDeadline(t time.Time) error {
	return c.Conn.SetWriteDeadline(t)
}

// SetReadDeadline sets the read deadline for the connection.
func (c *Connection) SetReadDeadline(t time.Time) error {
	return c.Conn.SetReadDeadline(t)
}

// Close closes the underlying WebSocket.
func (c *Connection) Close() error {
	return c.Conn.Close()
}
