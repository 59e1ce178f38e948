// Package middleware contains gin middleware for the HTTP API.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
)

// RateLimiter limits requests per client IP over a fixed window. Counters live
// in Redis so the limit holds across instances; without Redis it falls back to
// a per-process in-memory window.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration

	mu      sync.Mutex
	counts  map[string]int
	resetAt time.Time
}

// NewRateLimiter creates a RateLimiter. client may be nil.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client:  client,
		limit:   limit,
		window:  window,
		counts:  make(map[string]int),
		resetAt: time.Now().Add(window),
	}
}

// Handler returns the gin middleware. name scopes the counter so different
// endpoint groups get independent limits.
func (rl *RateLimiter) Handler(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := rl.allow(c.Request.Context(), name+":"+c.ClientIP())
		if err != nil {
			// Rate limiting is protective, not load bearing. Let the request
			// through when the backend is unreachable.
			slog.Warn("rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "too many requests",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ctx context.Context, key string) (bool, error) {
	if rl.client == nil {
		return rl.allowInMemory(key), nil
	}

	redisKey := "ratelimit:" + key
	count, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate counter: %w", err)
	}
	if count == 1 {
		if err := rl.client.Expire(ctx, redisKey, rl.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate counter expiry: %w", err)
		}
	}
	return count <= int64(rl.limit), nil
}

func (rl *RateLimiter) allowInMemory(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.After(rl.resetAt) {
		rl.counts = make(map[string]int)
		rl.resetAt = now.Add(rl.window)
	}

	rl.counts[key]++
	return rl.counts[key] <= rl.limit
}
