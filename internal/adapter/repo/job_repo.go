package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"songrelay/internal/domain"
	"songrelay/internal/infra"
	"songrelay/internal/sqlinline"
)

// JobRepositoryPG implements domain.JobStore on a song_jobs table.
type JobRepositoryPG struct {
	db infra.SQLExecutor
}

// NewJobRepository creates a job store backed by PostgreSQL. Statements must
// go through an executor that understands the sqlinline markers.
func NewJobRepository(db infra.SQLExecutor) *JobRepositoryPG {
	return &JobRepositoryPG{db: db}
}

// EnsureSchema creates the song_jobs table if it does not exist yet.
func (r *JobRepositoryPG) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, sqlinline.QEnsureSongJobs); err != nil {
		return fmt.Errorf("repo: ensure song_jobs: %w", err)
	}
	return nil
}

// Get fetches a job record by task id.
func (r *JobRepositoryPG) Get(ctx context.Context, taskID string) (*domain.JobRecord, bool, error) {
	var raw []byte
	if err := r.db.QueryRow(ctx, sqlinline.QSelectSongJob, taskID).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("repo: select job %s: %w", taskID, err)
	}
	var rec domain.JobRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false, fmt.Errorf("repo: decode job %s: %w", taskID, err)
	}
	return &rec, true, nil
}

// Put replaces the record stored for record.TaskID.
func (r *JobRepositoryPG) Put(ctx context.Context, record domain.JobRecord) error {
	if record.TaskID == "" {
		return errEmptyTaskID
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now().UTC()
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("repo: encode job %s: %w", record.TaskID, err)
	}
	if _, err := r.db.Exec(ctx, sqlinline.QUpsertSongJob, record.TaskID, string(record.Status), raw, record.UpdatedAt); err != nil {
		return fmt.Errorf("repo: upsert job %s: %w", record.TaskID, err)
	}
	return nil
}

// SeedPending stores the pending entry created right after submission.
func (r *JobRepositoryPG) SeedPending(ctx context.Context, taskID string, initial json.RawMessage) error {
	return r.Put(ctx, pendingRecord(taskID, initial))
}

var _ domain.JobStore = (*JobRepositoryPG)(nil)
