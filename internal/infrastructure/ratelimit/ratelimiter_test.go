package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestRedisLimiter_Allow(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := NewRedisLimiter(client, "resinfo:", 5)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")

	allowed, err = limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, allowed, "other keys are independent")
}

func TestRedisLimiter_WindowSlides(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := NewRedisLimiter(client, "", 2)
	ctx := context.Background()

	now := time.Unix(1_700_000_000, 0)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, err := limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, allowed)

	now = now.Add(Window + time.Second)
	allowed, err = limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLimiter_KeyPrefixAndTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	limiter := NewRedisLimiter(client, "resinfo:", 1)

	_, err := limiter.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)

	assert.True(t, mr.Exists("resinfo:ratelimit:10.0.0.1"))
	assert.Equal(t, Window+time.Minute, mr.TTL("resinfo:ratelimit:10.0.0.1"))
}

func TestRedisLimiter_Unavailable(t *testing.T) {
	client, mr := setupTestRedis(t)
	mr.Close()

	_, err := NewRedisLimiter(client, "", 1).Allow(context.Background(), "k")
	require.Error(t, err)
}

func TestMemoryLimiter_Allow(t *testing.T) {
	limiter := NewMemoryLimiter(3)
	now := time.Unix(1_700_000_000, 0)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, _ := limiter.Allow(ctx, "a")
	assert.False(t, allowed)

	allowed, _ = limiter.Allow(ctx, "b")
	assert.True(t, allowed)

	now = now.Add(Window / 3)
	allowed, _ = limiter.Allow(ctx, "a")
	assert.True(t, allowed, "one token refills per limit-th of the window")
}

func TestMemoryLimiter_SweepsIdleKeys(t *testing.T) {
	limiter := NewMemoryLimiter(1)
	now := time.Unix(1_700_000_000, 0)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	_, _ = limiter.Allow(ctx, "a")
	_, _ = limiter.Allow(ctx, "b")
	assert.Equal(t, 2, limiter.Len())

	now = now.Add(idleAfter)
	_, _ = limiter.Allow(ctx, "c")
	assert.Equal(t, 1, limiter.Len())
}
