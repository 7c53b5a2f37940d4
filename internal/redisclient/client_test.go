package redisclient

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyNamespaces(t *testing.T) {
	assert.Equal(t, "idempotency:sales:abc", idempotencyKey("sales:abc"))
	assert.Equal(t, "lock:sales:abc", lockKey("sales:abc"))
}

func TestIdempotencyKeyLifecycle(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("Integration test - requires TEST_REDIS_ADDR")
	}

	c, err := NewClient(addr, "", 0)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	key := "sales:" + uuid.NewString()

	seen, err := c.CheckIdempotencyKey(ctx, key)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, c.SetIdempotencyKey(ctx, key, "3", time.Minute))

	seen, err = c.CheckIdempotencyKey(ctx, key)
	require.NoError(t, err)
	assert.True(t, seen)

	ok, err := c.AcquireLock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.AcquireLock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.ReleaseLock(ctx, key))
	ok, err = c.AcquireLock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, c.ReleaseLock(ctx, key))
}
