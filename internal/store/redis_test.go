package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and a RedisStore over it.
func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_SetGet(t *testing.T) {
	sut, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, sut.Set(ctx, "cart", `[{"id":"1"}]`))

	// The key is namespaced on the server.
	got, err := mr.Get("pizzeria:cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, got)

	value, err := sut.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, value)
}

func TestRedisStore_GetMissingKey(t *testing.T) {
	sut, _ := setupTestRedis(t)

	_, err := sut.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRedisStore_EntriesDoNotExpire(t *testing.T) {
	sut, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, sut.Set(ctx, "cart", "value"))
	assert.Equal(t, time.Duration(0), mr.TTL("pizzeria:cart"))
}

func TestRedisStore_Delete(t *testing.T) {
	sut, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, sut.Set(ctx, "cart", "value"))
	require.NoError(t, sut.Delete(ctx, "cart"))

	_, err := sut.Get(ctx, "cart")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRedisStore_DeleteMissingKeyIsNoop(t *testing.T) {
	sut, _ := setupTestRedis(t)
	assert.NoError(t, sut.Delete(context.Background(), "never-set"))
}
