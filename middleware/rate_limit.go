package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/hanjiho/tripmate/config"
	"github.com/hanjiho/tripmate/utils"
)

type rateLimiter struct {
	limiter *rate.Limiter
	expires time.Time
	mu      sync.Mutex
}

var (
	limiters   = map[string]*rateLimiter{}
	limitersMu sync.Mutex
)

// RateLimitMiddleware applies a simple IP based rate limiter using a token bucket.
func RateLimitMiddleware() gin.HandlerFunc {
	cfg := config.Get()
	r := rate.Every(time.Minute / time.Duration(max(cfg.RateLimitPerMinute, 1)))
	burst := max(cfg.RateLimitPerMinute/2, 1)

	return func(ctx *gin.Context) {
		ip := ctx.ClientIP()
		limiter := getLimiter(ip, r, burst)

		limiter.mu.Lock()
		allowed := limiter.limiter.Allow()
		limiter.mu.Unlock()

		if !allowed {
			utils.Error(ctx, 429, 42901, "rate limit exceeded")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func getLimiter(ip string, r rate.Limit, burst int) *rateLimiter {
	limitersMu.Lock()
	defer limitersMu.Unlock()

	now := time.Now()
	if lim, ok := limiters[ip]; ok {
		lim.expires = now.Add(10 * time.Minute)
		return lim
	}

	// Opportunistic sweep of stale entries to bound the map size.
	for key, lim := range limiters {
		if now.After(lim.expires) {
			delete(limiters, key)
		}
	}

	lim := &rateLimiter{
		limiter: rate.NewLimiter(r, burst),
		expires: now.Add(10 * time.Minute),
	}
	limiters[ip] = lim
	return lim
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
