package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ashvale/coach-labs/internal/domain"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "coach:session:"

// RedisStore implements Repository using Redis. Records expire via native
// key TTL, refreshed on every write.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a new Redis-backed repository.
func NewRedis(addr, password string, db int, ttl time.Duration) (Repository, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) key(userID string) string {
	return sessionKeyPrefix + userID
}

// GetSession retrieves the session record for a user.
func (s *RedisStore) GetSession(ctx context.Context, userID string) (*domain.SessionRecord, error) {
	val, err := s.client.Get(ctx, s.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var record domain.SessionRecord
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return nil, fmt.Errorf("decode session record: %w", err)
	}
	return &record, nil
}

// PutSession creates or replaces the session record, refreshing its TTL.
func (s *RedisStore) PutSession(ctx context.Context, record *domain.SessionRecord) error {
	val, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	if err := s.client.Set(ctx, s.key(record.UserID), val, s.ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// DeleteSession removes the session record for a user.
func (s *RedisStore) DeleteSession(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// CleanupExpiredSessions is a no-op for Redis; keys expire natively.
func (s *RedisStore) CleanupExpiredSessions(ctx context.Context, ttl time.Duration) (int64, error) {
	return 0, nil
}

// Ping verifies Redis connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
