package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ashvale/coach-labs/internal/session"
	"github.com/coder/websocket"
)

// inboundFrame is a chat message sent by the client.
type inboundFrame struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// outboundFrame mirrors the HTTP chat envelope over the socket.
type outboundFrame struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Message interface{} `json:"message,omitempty"`
}

// ChatHandler serves the chat operation over a persistent WebSocket. Each
// inbound frame is one send-message operation; semantics match POST
// /api/chat, including implicit session init.
type ChatHandler struct {
	router *session.Router
	hub    *Hub
}

// NewChatHandler creates a new WebSocket chat handler.
func NewChatHandler(router *session.Router, hub *Hub) *ChatHandler {
	return &ChatHandler{router: router, hub: hub}
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err)
		return
	}
	defer func() {
		if closeErr := conn.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr)
		}
	}()

	ctx := r.Context()
	var registeredUser string
	defer func() {
		if registeredUser != "" {
			h.hub.Unregister(registeredUser, conn)
		}
	}()

	for {
		var frame inboundFrame
		if err := readJSON(ctx, conn, &frame); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || errors.Is(err, context.Canceled) {
				return
			}
			slog.Debug("WebSocket read ended", "error", err)
			return
		}

		if frame.UserID == "" || frame.Message == "" {
			h.write(ctx, conn, outboundFrame{Success: false, Error: "message and userId are required"})
			continue
		}

		if registeredUser == "" {
			h.hub.Register(frame.UserID, conn)
			registeredUser = frame.UserID
		}

		actor, err := h.router.Resolve(frame.UserID)
		if err != nil {
			h.write(ctx, conn, outboundFrame{Success: false, Error: "invalid userId"})
			continue
		}

		if _, err := actor.Init(ctx); err != nil {
			slog.Error("WebSocket chat init failed", "user_id", frame.UserID, "error", err)
			h.write(ctx, conn, outboundFrame{Success: false, Error: "internal server error"})
			continue
		}

		assistant, _, err := actor.SendMessage(ctx, frame.Message)
		if err != nil {
			slog.Error("WebSocket chat failed", "user_id", frame.UserID, "error", err)
			h.write(ctx, conn, outboundFrame{Success: false, Error: "internal server error"})
			continue
		}

		h.write(ctx, conn, outboundFrame{Success: true, Message: assistant})
	}
}

func (h *ChatHandler) write(ctx context.Context, conn *websocket.Conn, frame outboundFrame) {
	payload, err := json.Marshal(frame)
	if err != nil {
		slog.Debug("Failed to encode socket frame", "error", err)
		return
	}
	if err := conn.Write(ctx, websocket.MessageText, payload); err != nil {
		slog.Debug("WebSocket write error", "error", err)
	}
}

func readJSON(ctx context.Context, conn *websocket.Conn, v interface{}) error {
	_, data, err := conn.Read(ctx)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
