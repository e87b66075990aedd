package leaderboard

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Hub fans standings updates out to every connected viewer. Unlike a chat
// hub there is no per-user addressing: every client gets the same snapshot.
type Hub struct {
	connections map[*websocket.Conn]struct{}
	mutex       sync.RWMutex

	// Serializes Broadcast calls: gorilla connections allow one writer.
	writeMu sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[*websocket.Conn]struct{}),
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.connections[conn] = struct{}{}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, exists := h.connections[conn]; exists {
		_ = conn.Close()
		delete(h.connections, conn)
	}
}

// Send writes message to a single connection, serialized against Broadcast
// so the two can never interleave on the same socket. The connection is
// dropped on a write failure.
func (h *Hub) Send(conn *websocket.Conn, message interface{}) error {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	if err := conn.WriteJSON(message); err != nil {
		h.Unregister(conn)
		return err
	}
	return nil
}

// Broadcast sends message to every connection, dropping the ones that fail.
func (h *Hub) Broadcast(message interface{}) {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	h.mutex.RLock()
	conns := make([]*websocket.Conn, 0, len(h.connections))
	for conn := range h.connections {
		conns = append(conns, conn)
	}
	h.mutex.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(message); err != nil {
			h.Unregister(conn)
		}
	}
}

func (h *Hub) ConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn := range h.connections {
		_ = conn.Close()
	}
	h.connections = make(map[*websocket.Conn]struct{})
}
