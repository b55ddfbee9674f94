// Package ws provides a WebSocket transport for the chat operation.
package ws

import (
	"log/slog"
	"sync"

	"github.com/coder/websocket"
)

// Hub tracks the active WebSocket connection per user. A new connection for
// the same user replaces the old one.
type Hub struct {
	mu     sync.RWMutex
	active map[string]*websocket.Conn
}

// NewHub creates a new connection hub.
func NewHub() *Hub {
	return &Hub{active: make(map[string]*websocket.Conn)}
}

// Register adds a connection for a user, closing any previous one.
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.active[userID]; ok && existing != conn {
		_ = existing.Close(websocket.StatusNormalClosure, "connection replaced")
	}
	h.active[userID] = conn
	slog.Info("Chat socket registered", "user_id", userID)
}

// Unregister removes a connection for a user if it is still the active one.
func (h *Hub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.active[userID]; ok && current == conn {
		delete(h.active, userID)
		slog.Info("Chat socket unregistered", "user_id", userID)
	}
}

// CloseUser forcefully terminates the active connection for a user.
func (h *Hub) CloseUser(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, ok := h.active[userID]; ok {
		_ = conn.Close(websocket.StatusNormalClosure, "session closed")
		delete(h.active, userID)
	}
}
