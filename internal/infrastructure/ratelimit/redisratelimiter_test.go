package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, "login:10.0.0.1", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "login:10.0.0.1", 5, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")

	allowed, err = limiter.Allow(ctx, "login:10.0.0.2", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed, "other keys have their own budget")
}

func TestRedisRateLimiter_WindowSlides(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := limiter.Allow(ctx, "slide", 2, 200*time.Millisecond)
		require.NoError(t, err)
	}
	allowed, err := limiter.Allow(ctx, "slide", 2, 200*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, allowed)

	time.Sleep(300 * time.Millisecond)

	allowed, err = limiter.Allow(ctx, "slide", 2, 200*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	_, err := limiter.Allow(ctx, "reset", 1, time.Minute)
	require.NoError(t, err)
	allowed, err := limiter.Allow(ctx, "reset", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, "reset"))

	allowed, err = limiter.Allow(ctx, "reset", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestNoopLimiter(t *testing.T) {
	allowed, err := NoopLimiter{}.Allow(context.Background(), "k", 0, time.Second)
	require.NoError(t, err)
	assert.True(t, allowed)
}
