// Package session implements the per-user session actor and its router.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ashvale/coach-labs/internal/domain"
	"github.com/ashvale/coach-labs/internal/store"
)

// Greeting seeds every freshly created session.
const Greeting = "Hello! I'm your AI Interview Coach. I'm here to help you practice technical and behavioral interview questions. What type of role are you preparing for?"

// ErrSessionNotFound is returned by operations that require an existing record.
var ErrSessionNotFound = errors.New("session not found")

// Actor owns one user's session state. All operations execute under the
// actor's mutex, so per-user access is strictly serial; distinct users run
// on distinct actors and never contend. Every mutation is a whole-record
// read-modify-write against the repository: if the persist step fails the
// operation fails and nothing is committed.
type Actor struct {
	userID    string
	mu        sync.Mutex
	repo      store.Repository
	responder Responder
}

// Init loads the user's session, creating a fresh record with the seeded
// greeting and default profile when none exists. Repeated calls return the
// current state without resetting messages.
func (a *Actor) Init(ctx context.Context) (*domain.SessionRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	record, err := a.repo.GetSession(ctx, a.userID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	now := time.Now().UTC()
	if record == nil {
		record = domain.NewSessionRecord(a.userID, Greeting, now)
		slog.Info("Session created", "user_id", a.userID)
	}
	record.Touch(now)

	if err := a.repo.PutSession(ctx, record); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return record, nil
}

// SendMessage appends the user's message, produces the assistant turn via
// the configured responder, appends it, and persists both atomically with
// the rest of the record. The responder absorbs generation failures, so the
// user message is durably appended even when the model fails; only a
// storage failure aborts the operation.
func (a *Actor) SendMessage(ctx context.Context, content string) (domain.Message, *domain.SessionRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	record, err := a.repo.GetSession(ctx, a.userID)
	if err != nil {
		return domain.Message{}, nil, fmt.Errorf("load session: %w", err)
	}
	if record == nil {
		return domain.Message{}, nil, ErrSessionNotFound
	}

	now := time.Now().UTC()
	record.Append(domain.RoleUser, content, now)

	reply := a.responder.Respond(ctx, record, content)
	assistant := record.Append(domain.RoleAssistant, reply, time.Now().UTC())
	record.Touch(assistant.Timestamp)

	if err := a.repo.PutSession(ctx, record); err != nil {
		return domain.Message{}, nil, fmt.Errorf("persist session: %w", err)
	}
	return assistant, record, nil
}

// History returns the stored messages and profile. It never creates a
// record; a missing session yields empty defaults.
func (a *Actor) History(ctx context.Context) ([]domain.Message, domain.UserProfile, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	record, err := a.repo.GetSession(ctx, a.userID)
	if err != nil {
		return nil, domain.UserProfile{}, fmt.Errorf("load session: %w", err)
	}
	if record == nil {
		return []domain.Message{}, domain.UserProfile{}, nil
	}
	return record.Messages, record.UserProfile, nil
}

// Clear deletes the stored record unconditionally. Clearing a session that
// does not exist succeeds silently; recreation happens only via Init.
func (a *Actor) Clear(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.repo.DeleteSession(ctx, a.userID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	slog.Info("Session cleared", "user_id", a.userID)
	return nil
}
