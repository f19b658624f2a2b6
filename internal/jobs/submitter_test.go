package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songrelay/internal/adapter/repo"
	"songrelay/internal/domain"
	"songrelay/internal/providers/suno"
)

func TestSubmitSeedsPendingRecord(t *testing.T) {
	ctx := context.Background()
	store := repo.NewMemoryJobStore()
	upstream := &fakeUpstream{submitRes: &suno.SubmissionResult{
		TaskID: "t1",
		Raw:    json.RawMessage(`{"code":200,"msg":"success","data":{"taskId":"t1"}}`),
	}}

	res, err := NewSubmitter(store, upstream, nil).Submit(ctx, domain.GenerationRequest{Prompt: "a cat song"})
	require.NoError(t, err)
	assert.Equal(t, "t1", res.TaskID)

	require.Len(t, upstream.submitted, 1)
	assert.Equal(t, domain.DefaultModel, upstream.submitted[0].Model)

	rec, ok, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.JobStatusPending, rec.Status)
	assert.JSONEq(t, `{"taskId":"t1"}`, string(rec.Initial))
}

func TestSubmitRejectsInvalidRequestBeforeUpstream(t *testing.T) {
	store := repo.NewMemoryJobStore()
	upstream := &fakeUpstream{}

	_, err := NewSubmitter(store, upstream, nil).Submit(context.Background(), domain.GenerationRequest{CustomMode: true, Prompt: "x"})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "style", vErr.Field)
	assert.Empty(t, upstream.submitted)
	assert.Equal(t, 0, store.Len())
}

func TestSubmitWithoutCredentialCreatesNoRecord(t *testing.T) {
	store := repo.NewMemoryJobStore()
	client := suno.NewClient(suno.Options{})

	_, err := NewSubmitter(store, client, nil).Submit(context.Background(), domain.GenerationRequest{Prompt: "a cat song", Model: "V5"})
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Equal(t, 0, store.Len())
}

func TestSubmitWithoutTaskIDSkipsSeed(t *testing.T) {
	store := repo.NewMemoryJobStore()
	upstream := &fakeUpstream{submitRes: &suno.SubmissionResult{Raw: json.RawMessage(`{"code":200}`)}}

	_, err := NewSubmitter(store, upstream, nil).Submit(context.Background(), domain.GenerationRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestSubmitSucceedsWhenSeedFails(t *testing.T) {
	upstream := &fakeUpstream{submitRes: &suno.SubmissionResult{TaskID: "t1", Raw: json.RawMessage(`{"data":{"taskId":"t1"}}`)}}

	res, err := NewSubmitter(failingStore{err: errors.New("down")}, upstream, nil).Submit(context.Background(), domain.GenerationRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "t1", res.TaskID)
}

func TestSubmissionData(t *testing.T) {
	assert.JSONEq(t, `{"taskId":"a"}`, string(submissionData(json.RawMessage(`{"code":200,"data":{"taskId":"a"}}`))))
	assert.JSONEq(t, `{"code":200,"data":null}`, string(submissionData(json.RawMessage(`{"code":200,"data":null}`))))
}
