package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"songrelay/internal/domain"
)

// MemoryJobStore keeps job records for the lifetime of the process. The
// mutex only keeps the map memory-safe; callers still get last-write-wins.
// Records are held encoded, so nothing a caller does to a record it passed
// in or got back reaches the stored copy.
type MemoryJobStore struct {
	mu   sync.RWMutex
	jobs map[string][]byte
	now  func() time.Time
}

func NewMemoryJobStore() *MemoryJobStore {
	return &MemoryJobStore{
		jobs: make(map[string][]byte),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryJobStore) Get(_ context.Context, taskID string) (*domain.JobRecord, bool, error) {
	s.mu.RLock()
	data, ok := s.jobs[taskID]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	var rec domain.JobRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false, fmt.Errorf("repo: decode job %s: %w", taskID, err)
	}
	return &rec, true, nil
}

func (s *MemoryJobStore) Put(_ context.Context, record domain.JobRecord) error {
	if record.TaskID == "" {
		return errEmptyTaskID
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = s.now()
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("repo: encode job %s: %w", record.TaskID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[record.TaskID] = data
	return nil
}

func (s *MemoryJobStore) SeedPending(ctx context.Context, taskID string, initial json.RawMessage) error {
	return s.Put(ctx, pendingRecord(taskID, initial))
}

// Len returns the number of tracked jobs.
func (s *MemoryJobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

var _ domain.JobStore = (*MemoryJobStore)(nil)
