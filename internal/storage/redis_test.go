package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *RedisStore {
	mr := miniredis.RunT(t)
	store, err := OpenRedis(context.Background(), RedisOptions{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenRedisUnreachable(t *testing.T) {
	_, err := OpenRedis(context.Background(), RedisOptions{Address: "127.0.0.1:1"})
	assert.Error(t, err)
}

func TestRedisCRUD(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	t.Run("get_missing", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		assert.True(t, IsErrKeyNotFound(err))
	})

	t.Run("set_get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "schedule", []byte(`[]`)))
		data, err := store.Get(ctx, "schedule")
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(data))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "gone", []byte("x")))
		require.NoError(t, store.Delete(ctx, "gone"))
		_, err := store.Get(ctx, "gone")
		assert.True(t, IsErrKeyNotFound(err))
	})

	t.Run("keys_by_prefix", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "alert_2026-03-08_a", []byte("1")))
		require.NoError(t, store.Set(ctx, "alert_2026-03-08_b", []byte("1")))
		require.NoError(t, store.Set(ctx, "done_2026-03-08", []byte("[]")))

		keys, err := store.Keys(ctx, "alert_")
		require.NoError(t, err)
		assert.Len(t, keys, 2)
	})
}

func TestRedisBackedRepos(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	// The repos only see the Store interface; spot-check one against redis.
	repo := NewDoneRepo(store)
	_, err := repo.MarkDone(ctx, "2026-03-08", 1, "Lunch")
	require.NoError(t, err)

	done, err := repo.Done(ctx, "2026-03-08")
	require.NoError(t, err)
	assert.True(t, done[1])
}
