package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"calendar-booking/internal/handler/httperr"
	"calendar-booking/internal/pkg/config"
	"calendar-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var (
	errMissingToken      = errs.New("missing bearer token")
	errRateLimitExceeded = errs.New("rate limit exceeded")
)

const limiterIdleTTL = 30 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	every    rate.Limit
	burst    int
	now      func() time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	perMin := cfg.BookingsPerMinute
	if perMin <= 0 {
		perMin = 10
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		every:    rate.Every(time.Minute / time.Duration(perMin)),
		burst:    burst,
		now:      time.Now,
	}
}

func (r *RateLimiter) getLimiter(ip string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	entry, exists := r.limiters[ip]
	if !exists {
		r.evictIdle(now)
		entry = &limiterEntry{limiter: rate.NewLimiter(r.every, r.burst)}
		r.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// evictIdle must be called with mu held.
func (r *RateLimiter) evictIdle(now time.Time) {
	for ip, e := range r.limiters {
		if now.Sub(e.lastSeen) > limiterIdleTTL {
			delete(r.limiters, ip)
		}
	}
}

func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !r.getLimiter(ip).Allow() {
			slog.Warn("Rate limit exceeded", "client_ip", ip, "path", c.Request.URL.Path)
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimitExceeded, "too many requests, try again later", nil)
			return
		}
		c.Next()
	}
}
