package middleware

import (
	"strconv"
	"sync"
	"time"

	apierrors "github.com/artwork-tools/artwork-admin/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RateLimitConfig allows Requests per Window for each client IP, all of
// them available as a burst.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type ipLimiter struct {
	mu          sync.Mutex
	limiters    map[string]*rate.Limiter
	limit       rate.Limit
	burst       int
	lastCleanup time.Time
}

func (l *ipLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Since(l.lastCleanup) > 5*time.Minute {
		l.lastCleanup = time.Now()
		for k, lim := range l.limiters {
			// A full bucket has been idle for at least one window.
			if lim.Tokens() >= float64(l.burst) {
				delete(l.limiters, k)
			}
		}
	}

	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = lim
	}
	return lim
}

// RateLimit rejects clients exceeding cfg with 429 and a Retry-After header.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Requests <= 0 {
		cfg.Requests = 10
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}

	l := &ipLimiter{
		limiters:    make(map[string]*rate.Limiter),
		limit:       rate.Limit(float64(cfg.Requests) / cfg.Window.Seconds()),
		burst:       cfg.Requests,
		lastCleanup: time.Now(),
	}

	return func(c *gin.Context) {
		limiter := l.get(c.ClientIP())
		if limiter.Allow() {
			c.Next()
			return
		}

		reservation := limiter.Reserve()
		retryAfter := max(int(reservation.Delay().Seconds()), 1)
		reservation.Cancel()

		c.Header("Retry-After", strconv.Itoa(retryAfter))
		zerolog.Ctx(c.Request.Context()).Warn().
			Str("client_ip", c.ClientIP()).
			Int("retry_after", retryAfter).
			Msg("rate limit exceeded")

		apierrors.TooManyRequests(c, "")
		c.Abort()
	}
}
