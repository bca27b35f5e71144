package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/avelkov/bloghub/config"
	"github.com/avelkov/bloghub/utils"
)

type ipLimiter struct {
	limiter *rate.Limiter
	expires time.Time
}

var (
	limiters   = map[string]*ipLimiter{}
	limitersMu sync.Mutex
)

// RateLimitMiddleware applies a per-IP token bucket rate limiter.
func RateLimitMiddleware() gin.HandlerFunc {
	cfg := config.Get()
	perMinute := cfg.RateLimitPerMinute
	if perMinute < 1 {
		perMinute = 1
	}
	r := rate.Every(time.Minute / time.Duration(perMinute))
	burst := perMinute / 2
	if burst < 1 {
		burst = 1
	}

	return func(ctx *gin.Context) {
		if !getLimiter(ctx.ClientIP(), r, burst).Allow() {
			utils.Error(ctx, http.StatusTooManyRequests, 42901, "rate limit exceeded")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func getLimiter(key string, limit rate.Limit, burst int) *rate.Limiter {
	limitersMu.Lock()
	defer limitersMu.Unlock()

	now := time.Now()
	for k, l := range limiters {
		if now.After(l.expires) {
			delete(limiters, k)
		}
	}

	if l, ok := limiters[key]; ok {
		l.expires = now.Add(5 * time.Minute)
		return l.limiter
	}
	l := &ipLimiter{limiter: rate.NewLimiter(limit, burst), expires: now.Add(5 * time.Minute)}
	limiters[key] = l
	return l.limiter
}
