package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"school-admissions/backend/pkg/response"
)

// WindowCounter shared fixed-window counter, implemented by pkg/redis
type WindowCounter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit allows limit requests per window per client IP and route.
// With a counter the budget is shared across instances; when counter is nil
// or errors, an in-process token bucket with the same average rate applies.
func RateLimit(counter WindowCounter, limit int, window time.Duration) gin.HandlerFunc {
	local := newLocalLimiter(rate.Limit(float64(limit)/window.Seconds()), limit)

	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())

		allowed := true
		var err error
		if counter != nil {
			allowed, err = counter.CheckRateLimit(c.Request.Context(), key, limit, window)
		}
		if counter == nil || err != nil {
			allowed = local.allow(key)
		}

		if !allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			response.Error(c, http.StatusTooManyRequests, 10004, "too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// localLimiter per-key token buckets; idle keys are evicted lazily
type localLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rps       rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

const visitorIdleTTL = 5 * time.Minute

func newLocalLimiter(rps rate.Limit, burst int) *localLimiter {
	if burst < 1 {
		burst = 1
	}
	return &localLimiter{
		visitors: make(map[string]*visitor),
		rps:      rps,
		burst:    burst,
		now:      time.Now,
	}
}

func (l *localLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > visitorIdleTTL {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > visitorIdleTTL {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}
