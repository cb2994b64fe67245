package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qreserve/qreserve/internal/infrastructure/ratelimit"
	"github.com/qreserve/qreserve/internal/shared/logger"
	"github.com/qreserve/qreserve/internal/shared/utils"
)

// RateLimiter limits requests per client IP and route group.
type RateLimiter struct {
	limiter ratelimit.Limiter
	limit   int
	window  time.Duration
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.Limiter, limit int, window time.Duration, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		limit:   limit,
		window:  window,
		logger:  logger,
	}
}

// Limit returns a middleware counting requests under scope. When the
// backing store fails the request is allowed.
func (rl *RateLimiter) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()

		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.limit, rl.window)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable, allowing request", "key", key, "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
