package session

import (
	"errors"
	"regexp"
	"sync"

	"github.com/ashvale/coach-labs/internal/store"
)

// ErrInvalidIdentifier is returned for empty or malformed user identifiers.
var ErrInvalidIdentifier = errors.New("invalid user identifier")

var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// ResponderFactory builds the responder for a newly created actor. Each
// actor gets its own instance so per-actor state (like the workflow rng)
// is never shared across users.
type ResponderFactory func() Responder

// Router maps a user identifier to its single live Actor. The same
// identifier always resolves to the same actor instance for the lifetime
// of the process; durable state lives in the repository, so resolution is
// also stable across restarts.
type Router struct {
	mu           sync.Mutex
	actors       map[string]*Actor
	repo         store.Repository
	newResponder ResponderFactory
}

// NewRouter creates a router over the given repository.
func NewRouter(repo store.Repository, newResponder ResponderFactory) *Router {
	return &Router{
		actors:       make(map[string]*Actor),
		repo:         repo,
		newResponder: newResponder,
	}
}

// Resolve returns the actor owning the given user's session, creating it on
// first use. Two concurrent resolves for the same identifier observe the
// same actor.
func (r *Router) Resolve(userID string) (*Actor, error) {
	if !userIDPattern.MatchString(userID) {
		return nil, ErrInvalidIdentifier
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if actor, ok := r.actors[userID]; ok {
		return actor, nil
	}

	actor := &Actor{
		userID:    userID,
		repo:      r.repo,
		responder: r.newResponder(),
	}
	r.actors[userID] = actor
	return actor, nil
}
