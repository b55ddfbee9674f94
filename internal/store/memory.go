package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ashvale/coach-labs/internal/domain"
)

// MemoryStore implements Repository with an in-memory map. Records are
// stored serialized, like the durable drivers, so callers never share
// mutable state with the store. Intended for tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
	updated map[string]time.Time
}

// NewMemory creates a new in-memory repository.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		records: make(map[string][]byte),
		updated: make(map[string]time.Time),
	}
}

// GetSession retrieves the session record for a user.
func (s *MemoryStore) GetSession(ctx context.Context, userID string) (*domain.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.records[userID]
	if !ok {
		return nil, nil
	}
	var record domain.SessionRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode session record: %w", err)
	}
	return &record, nil
}

// PutSession creates or replaces the session record for a user.
func (s *MemoryStore) PutSession(ctx context.Context, record *domain.SessionRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.UserID] = raw
	s.updated[record.UserID] = time.Now()
	return nil
}

// DeleteSession removes the session record for a user.
func (s *MemoryStore) DeleteSession(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, userID)
	delete(s.updated, userID)
	return nil
}

// CleanupExpiredSessions removes records idle longer than ttl.
func (s *MemoryStore) CleanupExpiredSessions(ctx context.Context, ttl time.Duration) (int64, error) {
	threshold := time.Now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for userID, at := range s.updated {
		if at.Before(threshold) {
			delete(s.records, userID)
			delete(s.updated, userID)
			removed++
		}
	}
	return removed, nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close releases the store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.updated = nil
	return nil
}
