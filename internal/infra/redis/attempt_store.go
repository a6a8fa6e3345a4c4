package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"millionaire-quiz/internal/domain"
)

// AttemptStore keeps attempts in Redis as JSON strings that expire after ttl
// of inactivity:  SET quiz:attempt:{id} {json} EX ttl
type AttemptStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAttemptStore(client *redis.Client, ttl time.Duration) *AttemptStore {
	return &AttemptStore{client: client, ttl: ttl}
}

func (s *AttemptStore) Save(ctx context.Context, attempt domain.Attempt) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("marshal attempt: %w", err)
	}
	return s.client.Set(ctx, s.key(attempt.ID), data, s.ttl).Err()
}

func (s *AttemptStore) Get(ctx context.Context, id string) (domain.Attempt, error) {
	if id == "" {
		return domain.Attempt{}, domain.ErrNotAuthenticated
	}
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Attempt{}, domain.ErrNotAuthenticated
	}
	if err != nil {
		return domain.Attempt{}, fmt.Errorf("get attempt: %w", err)
	}

	var attempt domain.Attempt
	if err := json.Unmarshal(data, &attempt); err != nil {
		return domain.Attempt{}, fmt.Errorf("unmarshal attempt: %w", err)
	}
	return attempt, nil
}

func (s *AttemptStore) key(id string) string {
	return "quiz:attempt:" + id
}
