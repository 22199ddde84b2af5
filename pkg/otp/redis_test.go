package otp

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, 5*time.Minute), mr
}

func TestRedisStoreVerifyConsumesCode(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	require.NoError(t, store.Set(ctx, "+919876543210", "123456"))

	ok, err := store.Verify(ctx, "+919876543210", "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Verify(ctx, "+919876543210", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreWrongCodeKeepsPending(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	require.NoError(t, store.Set(ctx, "+919876543210", "123456"))

	ok, err := store.Verify(ctx, "+919876543210", "654321")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Verify(ctx, "+919876543210", "123456")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.Set(ctx, "+919876543210", "123456"))

	mr.FastForward(6 * time.Minute)

	ok, err := store.Verify(ctx, "+919876543210", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreKeysAreNamespaced(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.Set(ctx, "+919876543210", "123456"))

	got, err := mr.Get("otp:+919876543210")
	require.NoError(t, err)
	assert.Equal(t, "123456", got)
}
