package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ashvale/coach-labs/internal/domain"
	"github.com/ashvale/coach-labs/internal/metrics"
	"github.com/ashvale/coach-labs/internal/session"
	"github.com/ashvale/coach-labs/internal/store"
	"github.com/go-chi/chi/v5"
)

// staticResponder always answers with the same text.
type staticResponder struct {
	reply string
}

func (s staticResponder) Respond(ctx context.Context, record *domain.SessionRecord, userMessage string) string {
	return s.reply
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	router := session.NewRouter(store.NewMemory(), func() session.Responder {
		return staticResponder{reply: "coach reply"}
	})
	h := NewSessionHandler(router, metrics.New(), "test")

	r := chi.NewRouter()
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)
	h.RegisterRoutes(r)
	r.Get("/", Index)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp, decodeEnvelope(t, resp)
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var envelope map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return envelope
}

func TestInitCreatesSession(t *testing.T) {
	srv := newTestServer(t)

	resp, envelope := postJSON(t, srv.URL+"/api/session/init", map[string]string{"userId": "u1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if envelope["success"] != true {
		t.Errorf("Expected success envelope, got %v", envelope)
	}

	sess, ok := envelope["session"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected session payload, got %v", envelope)
	}
	messages := sess["messages"].([]interface{})
	if len(messages) != 1 {
		t.Errorf("Expected 1 seeded message, got %d", len(messages))
	}
}

func TestInitRequiresUserID(t *testing.T) {
	srv := newTestServer(t)

	resp, envelope := postJSON(t, srv.URL+"/api/session/init", map[string]string{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", resp.StatusCode)
	}
	if envelope["success"] != false {
		t.Errorf("Expected failure envelope, got %v", envelope)
	}
}

func TestMessageRequiresExistingSession(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := postJSON(t, srv.URL+"/api/session/message", map[string]string{
		"userId":  "ghost",
		"message": "hello",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", resp.StatusCode)
	}
}

func TestMessageAppendsPair(t *testing.T) {
	srv := newTestServer(t)

	postResp, _ := postJSON(t, srv.URL+"/api/session/init", map[string]string{"userId": "u1"})
	if postResp.StatusCode != http.StatusOK {
		t.Fatalf("Init failed with %d", postResp.StatusCode)
	}

	resp, envelope := postJSON(t, srv.URL+"/api/session/message", map[string]string{
		"userId":  "u1",
		"message": "Hi",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	message := envelope["message"].(map[string]interface{})
	if message["role"] != domain.RoleAssistant || message["content"] != "coach reply" {
		t.Errorf("Unexpected assistant message: %v", message)
	}

	sessionData := envelope["sessionData"].(map[string]interface{})
	messages := sessionData["messages"].([]interface{})
	if len(messages) != 3 {
		t.Errorf("Expected 3 messages, got %d", len(messages))
	}
}

func TestChatRequiresBothFields(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []map[string]string{
		{"userId": "u1"},
		{"message": "hello"},
		{},
	} {
		resp, _ := postJSON(t, srv.URL+"/api/chat", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Body %v: expected 400, got %d", body, resp.StatusCode)
		}
	}
}

func TestChatAutoInitializes(t *testing.T) {
	srv := newTestServer(t)

	resp, envelope := postJSON(t, srv.URL+"/api/chat", map[string]string{
		"userId":  "fresh",
		"message": "Hi",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	sessionData := envelope["sessionData"].(map[string]interface{})
	messages := sessionData["messages"].([]interface{})
	// Seeded greeting + user message + assistant reply.
	if len(messages) != 3 {
		t.Errorf("Expected 3 messages after auto-init chat, got %d", len(messages))
	}
}

func TestHistoryEmptyForUnknownUser(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/session/history?userId=nobody")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	envelope := decodeEnvelope(t, resp)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	messages := envelope["messages"].([]interface{})
	if len(messages) != 0 {
		t.Errorf("Expected empty history, got %d", len(messages))
	}
}

func TestHistoryRequiresUserID(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/session/history")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
}

func TestClearThenHistoryEmpty(t *testing.T) {
	srv := newTestServer(t)

	postJSON(t, srv.URL+"/api/session/init", map[string]string{"userId": "u1"})
	postJSON(t, srv.URL+"/api/chat", map[string]string{"userId": "u1", "message": "Hi"})

	resp, envelope := postJSON(t, srv.URL+"/api/session/clear", map[string]string{"userId": "u1"})
	if resp.StatusCode != http.StatusOK || envelope["success"] != true {
		t.Fatalf("Clear failed: %d %v", resp.StatusCode, envelope)
	}

	// Clearing again is a no-op that still succeeds.
	resp, _ = postJSON(t, srv.URL+"/api/session/clear", map[string]string{"userId": "u1"})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected idempotent clear, got %d", resp.StatusCode)
	}

	getResp, err := http.Get(srv.URL + "/api/session/history?userId=u1")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	historyEnvelope := decodeEnvelope(t, getResp)
	messages := historyEnvelope["messages"].([]interface{})
	if len(messages) != 0 {
		t.Errorf("Expected empty history after clear, got %d", len(messages))
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	envelope := decodeEnvelope(t, resp)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if envelope["success"] != true {
		t.Errorf("Expected success, got %v", envelope)
	}
	if envelope["timestamp"] == nil || envelope["version"] != "test" {
		t.Errorf("Expected timestamp and version, got %v", envelope)
	}
}

func TestUnknownPathReturns404Envelope(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/unknown")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	envelope := decodeEnvelope(t, resp)

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.StatusCode)
	}
	if envelope["success"] != false {
		t.Errorf("Expected failure envelope, got %v", envelope)
	}
}

func TestWrongMethodReturns405(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/session/init")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", resp.StatusCode)
	}
}
