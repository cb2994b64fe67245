package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether another request identified by key fits in the
// window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Reset(ctx context.Context, key string) error
}

// NoopLimiter allows everything. Used when rate limiting is disabled.
type NoopLimiter struct{}

func (NoopLimiter) Allow(context.Context, string, int, time.Duration) (bool, error) {
	return true, nil
}

func (NoopLimiter) Reset(context.Context, string) error {
	return nil
}
