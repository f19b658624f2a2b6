package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"songrelay/internal/domain"
)

const redisJobKeyPrefix = "songrelay:job:"

// RedisJobStore keeps each job record as a JSON string under its own key.
// A zero TTL keeps records until they are overwritten.
type RedisJobStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisJobStore(client *redis.Client, ttl time.Duration) *RedisJobStore {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisJobStore{client: client, ttl: ttl}
}

func redisJobKey(taskID string) string {
	return redisJobKeyPrefix + taskID
}

func (s *RedisJobStore) Get(ctx context.Context, taskID string) (*domain.JobRecord, bool, error) {
	data, err := s.client.Get(ctx, redisJobKey(taskID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("repo: redis get %s: %w", taskID, err)
	}
	var rec domain.JobRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false, fmt.Errorf("repo: decode job %s: %w", taskID, err)
	}
	return &rec, true, nil
}

func (s *RedisJobStore) Put(ctx context.Context, record domain.JobRecord) error {
	if record.TaskID == "" {
		return errEmptyTaskID
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("repo: encode job %s: %w", record.TaskID, err)
	}
	if err := s.client.Set(ctx, redisJobKey(record.TaskID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("repo: redis set %s: %w", record.TaskID, err)
	}
	return nil
}

func (s *RedisJobStore) SeedPending(ctx context.Context, taskID string, initial json.RawMessage) error {
	return s.Put(ctx, pendingRecord(taskID, initial))
}

var _ domain.JobStore = (*RedisJobStore)(nil)
