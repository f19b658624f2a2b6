package jobs

import (
	"bytes"
	"context"
	"encoding/json"

	"songrelay/internal/domain"
	"songrelay/internal/infra"
	"songrelay/internal/providers/suno"
)

// Generator submits generation requests to the provider.
type Generator interface {
	Submit(ctx context.Context, req domain.GenerationRequest) (*suno.SubmissionResult, error)
}

// Submitter validates a request, forwards it and seeds the pending record.
type Submitter struct {
	store    domain.JobStore
	upstream Generator
	logger   *infra.Logger
}

func NewSubmitter(store domain.JobStore, upstream Generator, logger *infra.Logger) *Submitter {
	return &Submitter{store: store, upstream: upstream, logger: infra.OrDiscard(logger)}
}

// Submit returns *domain.ValidationError for bad input and the upstream
// client's error otherwise. The store is only touched after the provider
// accepted the job; a failed seed is logged and does not fail the call.
func (s *Submitter) Submit(ctx context.Context, req domain.GenerationRequest) (*suno.SubmissionResult, error) {
	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	res, err := s.upstream.Submit(ctx, req)
	if err != nil {
		return nil, err
	}

	if res.TaskID == "" {
		s.logger.Warn().Msg("provider accepted job without task id, not tracking it")
		return res, nil
	}
	if err := s.store.SeedPending(ctx, res.TaskID, submissionData(res.Raw)); err != nil {
		s.logger.Error().Err(err).Str("task_id", res.TaskID).Msg("failed to seed pending job")
		return res, nil
	}
	s.logger.Info().Str("task_id", res.TaskID).Str("model", req.Model).Msg("job submitted")
	return res, nil
}

// submissionData keeps the provider's data object, or the whole body when
// there is none.
func submissionData(raw json.RawMessage) json.RawMessage {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if trimmed := bytes.TrimSpace(envelope.Data); len(trimmed) > 0 && trimmed[0] == '{' {
			return trimmed
		}
	}
	return raw
}
