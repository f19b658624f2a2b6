package repo

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songrelay/internal/domain"
)

// exerciseJobStore checks the behaviour every backend must share.
func exerciseJobStore(t *testing.T, store domain.JobStore) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SeedPending(ctx, "task-1", json.RawMessage(`{"taskId":"task-1"}`)))
	rec, ok, err := store.Get(ctx, "task-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.JobStatusPending, rec.Status)
	assert.JSONEq(t, `{"taskId":"task-1"}`, string(rec.Initial))
	assert.False(t, rec.UpdatedAt.IsZero())

	completed := domain.JobRecord{
		TaskID: "task-1",
		Status: domain.JobStatusCompleted,
		Data: &domain.SongResult{
			ID:       "task-1",
			Status:   domain.ResultStatusSuccess,
			SunoData: []domain.Track{{"audioUrl": "http://x"}},
		},
		UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, store.Put(ctx, completed))

	rec, ok, err = store.Get(ctx, "task-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.JobStatusCompleted, rec.Status)
	assert.Nil(t, rec.Initial, "put must overwrite, not merge")
	require.NotNil(t, rec.Data)
	assert.Equal(t, "http://x", rec.Data.SunoData[0].AudioURL())
	assert.True(t, completed.UpdatedAt.Equal(rec.UpdatedAt))

	assert.Error(t, store.Put(ctx, domain.JobRecord{Status: domain.JobStatusPending}))
}
