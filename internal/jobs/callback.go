package jobs

import (
	"context"
	"errors"
	"fmt"

	"songrelay/internal/domain"
	"songrelay/internal/infra"
)

// CallbackProcessor writes normalized webhook deliveries into the job store.
type CallbackProcessor struct {
	store  domain.JobStore
	logger *infra.Logger
}

func NewCallbackProcessor(store domain.JobStore, logger *infra.Logger) *CallbackProcessor {
	return &CallbackProcessor{store: store, logger: infra.OrDiscard(logger)}
}

// Process normalizes one delivery and stores it, replacing any prior record.
// A callback without a task id returns (nil, nil): it is acknowledged but
// not stored.
func (p *CallbackProcessor) Process(ctx context.Context, raw []byte) (*domain.JobRecord, error) {
	record, err := NormalizeCallback(raw)
	if errors.Is(err, ErrMissingTaskID) {
		p.logger.Warn().Int("bytes", len(raw)).Msg("callback without task id ignored")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := p.store.Put(ctx, *record); err != nil {
		return nil, fmt.Errorf("jobs: store callback %s: %w", record.TaskID, err)
	}
	p.logger.Info().
		Str("task_id", record.TaskID).
		Str("status", string(record.Status)).
		Str("result", record.Data.Status).
		Str("callback_type", record.Data.CallbackType).
		Int("tracks", len(record.Data.SunoData)).
		Msg("callback stored")
	return record, nil
}
