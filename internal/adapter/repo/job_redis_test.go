package repo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisJobStoreContract(t *testing.T) {
	_, client := newMiniRedis(t)
	exerciseJobStore(t, NewRedisJobStore(client, 0))
}

func TestRedisJobStoreKeysAndTTL(t *testing.T) {
	mr, client := newMiniRedis(t)
	store := NewRedisJobStore(client, time.Hour)

	require.NoError(t, store.SeedPending(context.Background(), "abc", nil))
	assert.True(t, mr.Exists("songrelay:job:abc"))
	assert.Equal(t, time.Hour, mr.TTL("songrelay:job:abc"))

	mr.FastForward(2 * time.Hour)
	_, ok, err := store.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisJobStoreWithoutTTLKeepsRecords(t *testing.T) {
	mr, client := newMiniRedis(t)
	store := NewRedisJobStore(client, -time.Second)

	require.NoError(t, store.SeedPending(context.Background(), "abc", nil))
	assert.Equal(t, time.Duration(0), mr.TTL("songrelay:job:abc"))
}

func TestRedisJobStoreRejectsCorruptRecords(t *testing.T) {
	mr, client := newMiniRedis(t)
	store := NewRedisJobStore(client, 0)
	require.NoError(t, mr.Set("songrelay:job:bad", "{not json"))

	_, _, err := store.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode job bad")
}
