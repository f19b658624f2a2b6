package jobs

import (
	"context"
	"encoding/json"
	"sync"

	"songrelay/internal/domain"
	"songrelay/internal/providers/suno"
)

type fakeUpstream struct {
	mu          sync.Mutex
	statusBody  json.RawMessage
	statusErr   error
	statusCalls []string
	submitRes   *suno.SubmissionResult
	submitErr   error
	submitted   []domain.GenerationRequest
}

func (f *fakeUpstream) FetchStatus(_ context.Context, taskID string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls = append(f.statusCalls, taskID)
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return f.statusBody, nil
}

func (f *fakeUpstream) Submit(_ context.Context, req domain.GenerationRequest) (*suno.SubmissionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, req)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.submitRes, nil
}

type failingStore struct {
	err error
}

func (s failingStore) Get(context.Context, string) (*domain.JobRecord, bool, error) {
	return nil, false, s.err
}

func (s failingStore) Put(context.Context, domain.JobRecord) error {
	return s.err
}

func (s failingStore) SeedPending(context.Context, string, json.RawMessage) error {
	return s.err
}
