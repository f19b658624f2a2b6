package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"songrelay/internal/domain"
	"songrelay/internal/infra"
)

// Where a status answer came from.
const (
	SourceCallback = "callback"
	SourceUpstream = "upstream"
)

// StatusFetcher queries the provider for the live state of a task.
type StatusFetcher interface {
	FetchStatus(ctx context.Context, taskID string) (json.RawMessage, error)
}

// StatusResult is either a completed cached record or the provider's live
// answer, never a mix of both.
type StatusResult struct {
	Source   string
	Record   *domain.JobRecord
	Upstream json.RawMessage
}

// Payload returns the value to hand back to the client.
func (s *StatusResult) Payload() any {
	if s.Record != nil {
		return s.Record
	}
	return s.Upstream
}

// Reconciler decides between the stored callback result and a live query.
type Reconciler struct {
	store    domain.JobStore
	upstream StatusFetcher
	logger   *infra.Logger
}

func NewReconciler(store domain.JobStore, upstream StatusFetcher, logger *infra.Logger) *Reconciler {
	return &Reconciler{store: store, upstream: upstream, logger: infra.OrDiscard(logger)}
}

// Status serves a completed record straight from the store. Anything else,
// including a stale pending record, is answered by the provider verbatim.
// Upstream failures are returned wrapped in domain.ErrUpstreamQueryFailed
// and are not retried.
func (r *Reconciler) Status(ctx context.Context, taskID string) (*StatusResult, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return nil, &domain.ValidationError{Field: "taskId", Reason: "is required"}
	}

	record, ok, err := r.store.Get(ctx, taskID)
	if err != nil {
		r.logger.Warn().Err(err).Str("task_id", taskID).Msg("job store read failed, querying upstream")
	} else if ok && record.Completed() {
		r.logger.Debug().Str("task_id", taskID).Msg("status served from callback")
		return &StatusResult{Source: SourceCallback, Record: record}, nil
	}

	raw, err := r.upstream.FetchStatus(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamQueryFailed, err)
	}
	r.logger.Debug().Str("task_id", taskID).Bool("cached_pending", ok).Msg("status served from upstream")
	return &StatusResult{Source: SourceUpstream, Upstream: raw}, nil
}
