package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisad "place_sentiment/internal/adapters/redis"
)

func newGuard(t *testing.T) (*redisad.Guard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	g := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = g.Close() })
	require.NoError(t, g.Ping(context.Background()))
	return g, mr
}

func TestGuard_AcquireReleaseCycle(t *testing.T) {
	g, mr := newGuard(t)
	ctx := context.Background()

	release, ok, err := g.Acquire(ctx, "client|eiffel tower", 30*time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists("placesent:inflight:client|eiffel tower"))

	_, ok, err = g.Acquire(ctx, "client|eiffel tower", 30*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	release()
	assert.False(t, mr.Exists("placesent:inflight:client|eiffel tower"))

	_, ok, err = g.Acquire(ctx, "client|eiffel tower", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGuard_TTLExpiry(t *testing.T) {
	g, mr := newGuard(t)
	ctx := context.Background()

	stale, ok, err := g.Acquire(ctx, "k", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	_, ok, err = g.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	// the expired holder must not free the new one
	stale()
	_, ok, err = g.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGuard_RedisDown(t *testing.T) {
	g, mr := newGuard(t)
	mr.Close()

	_, ok, err := g.Acquire(context.Background(), "k", time.Second)
	assert.Error(t, err)
	assert.False(t, ok)
}
