package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"millionaire-quiz/internal/domain"
)

const resultsKey = "quiz:results"

// ResultStore keeps the results collection as a Redis list of JSON records.
// RPUSH makes every append atomic, so concurrent writers cannot lose records.
type ResultStore struct {
	client *redis.Client
}

func NewResultStore(client *redis.Client) *ResultStore {
	return &ResultStore{client: client}
}

// LoadAll skips entries that fail to parse.
func (s *ResultStore) LoadAll(ctx context.Context) ([]domain.ResultRecord, error) {
	raw, err := s.client.LRange(ctx, resultsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}

	records := make([]domain.ResultRecord, 0, len(raw))
	for i, entry := range raw {
		var record domain.ResultRecord
		if err := json.Unmarshal([]byte(entry), &record); err != nil {
			log.Printf("results store: %v: entry %d: %v", domain.ErrStorageCorrupt, i, err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *ResultStore) Append(ctx context.Context, record domain.ResultRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := s.client.RPush(ctx, resultsKey, data).Err(); err != nil {
		return fmt.Errorf("append result: %w", err)
	}
	return nil
}
