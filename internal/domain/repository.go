package domain

import (
	"context"
	"encoding/json"
)

// JobStore keeps the latest known state per upstream task id. Writes
// overwrite; there is no merge and no eviction.
type JobStore interface {
	Get(ctx context.Context, taskID string) (*JobRecord, bool, error)
	Put(ctx context.Context, record JobRecord) error
	SeedPending(ctx context.Context, taskID string, initial json.RawMessage) error
}
