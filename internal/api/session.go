package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ashvale/coach-labs/internal/metrics"
	"github.com/ashvale/coach-labs/internal/session"
	"github.com/go-chi/chi/v5"
)

// SessionHandler handles session lifecycle and chat endpoints.
type SessionHandler struct {
	router  *session.Router
	metrics *metrics.Metrics
	version string
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(router *session.Router, m *metrics.Metrics, version string) *SessionHandler {
	return &SessionHandler{router: router, metrics: m, version: version}
}

// RegisterRoutes registers the session API routes.
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/session/init", h.Init)
		r.Post("/session/message", h.Message)
		r.Post("/chat", h.Chat)
		r.Get("/session/history", h.History)
		r.Post("/session/clear", h.Clear)
		r.Get("/health", h.Health)
	})
}

type sessionRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

func (h *SessionHandler) count(operation string, status int) {
	h.metrics.RequestsTotal.WithLabelValues(operation, strconv.Itoa(status)).Inc()
}

// Init creates or reloads the user's session.
func (h *SessionHandler) Init(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeBody(w, r, &req); err != nil || req.UserID == "" {
		h.count("init", http.StatusBadRequest)
		Error(w, http.StatusBadRequest, "userId is required")
		return
	}

	actor, err := h.router.Resolve(req.UserID)
	if err != nil {
		h.count("init", http.StatusBadRequest)
		Error(w, http.StatusBadRequest, "invalid userId")
		return
	}

	record, err := actor.Init(r.Context())
	if err != nil {
		slog.Error("Session init failed", "user_id", req.UserID, "error", err)
		h.count("init", http.StatusInternalServerError)
		Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.metrics.SessionsInitialized.Inc()
	h.count("init", http.StatusOK)
	JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"session": record,
	})
}

// Message appends a user message to an existing session. Unlike Chat it
// never creates the session implicitly.
func (h *SessionHandler) Message(w http.ResponseWriter, r *http.Request) {
	h.sendMessage(w, r, "message", false)
}

// Chat is the public chat endpoint. A missing session is initialized on the
// fly, matching the original single-call contract of the browser client.
func (h *SessionHandler) Chat(w http.ResponseWriter, r *http.Request) {
	h.sendMessage(w, r, "chat", true)
}

func (h *SessionHandler) sendMessage(w http.ResponseWriter, r *http.Request, operation string, autoInit bool) {
	var req sessionRequest
	if err := decodeBody(w, r, &req); err != nil || req.UserID == "" || req.Message == "" {
		h.count(operation, http.StatusBadRequest)
		Error(w, http.StatusBadRequest, "message and userId are required")
		return
	}

	actor, err := h.router.Resolve(req.UserID)
	if err != nil {
		h.count(operation, http.StatusBadRequest)
		Error(w, http.StatusBadRequest, "invalid userId")
		return
	}

	if autoInit {
		if _, err := actor.Init(r.Context()); err != nil {
			slog.Error("Chat auto-init failed", "user_id", req.UserID, "error", err)
			h.count(operation, http.StatusInternalServerError)
			Error(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	assistant, record, err := actor.SendMessage(r.Context(), req.Message)
	if errors.Is(err, session.ErrSessionNotFound) {
		h.count(operation, http.StatusNotFound)
		Error(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("Send message failed", "user_id", req.UserID, "error", err)
		h.count(operation, http.StatusInternalServerError)
		Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.metrics.MessagesExchanged.Inc()
	h.count(operation, http.StatusOK)
	JSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"message":     assistant,
		"sessionData": record,
	})
}

// History returns the stored conversation and profile, or empty defaults
// when no session exists.
func (h *SessionHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")

	actor, err := h.router.Resolve(userID)
	if err != nil {
		h.count("history", http.StatusBadRequest)
		Error(w, http.StatusBadRequest, "userId is required")
		return
	}

	messages, profile, err := actor.History(r.Context())
	if err != nil {
		slog.Error("History lookup failed", "user_id", userID, "error", err)
		h.count("history", http.StatusInternalServerError)
		Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.count("history", http.StatusOK)
	JSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"messages":    messages,
		"userProfile": profile,
	})
}

// Clear deletes the user's session. Clearing a nonexistent session succeeds.
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeBody(w, r, &req); err != nil || req.UserID == "" {
		h.count("clear", http.StatusBadRequest)
		Error(w, http.StatusBadRequest, "userId is required")
		return
	}

	actor, err := h.router.Resolve(req.UserID)
	if err != nil {
		h.count("clear", http.StatusBadRequest)
		Error(w, http.StatusBadRequest, "invalid userId")
		return
	}

	if err := actor.Clear(r.Context()); err != nil {
		slog.Error("Session clear failed", "user_id", req.UserID, "error", err)
		h.count("clear", http.StatusInternalServerError)
		Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.metrics.SessionsCleared.Inc()
	h.count("clear", http.StatusOK)
	JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// Health reports service liveness.
func (h *SessionHandler) Health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   h.version,
	})
}
