package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	rateLimiterCleanupInterval = 5 * time.Minute
	rateLimiterIdleTimeout     = time.Hour
)

// rateLimiterStore holds per-IP rate limiters.
type rateLimiterStore struct {
	limiters sync.Map // client IP -> *rateLimiterEntry
	rps      float64
	burst    int
}

type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// RateLimitMiddleware enforces a token bucket of rps requests per second with burst
// capacity per client IP (c.ClientIP, so X-Forwarded-For is honoured). Rejected
// requests get 429 with a Retry-After header. Idle limiters are dropped by a
// goroutine that runs until ctx is done.
func RateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := &rateLimiterStore{
		rps:   rps,
		burst: burst,
	}

	go store.cleanupStale(ctx, rateLimiterCleanupInterval, rateLimiterIdleTimeout)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := store.getLimiter(clientIP)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(reservation.Delay().Seconds()) + 1
			reservation.Cancel()

			logger.Debug("rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many requests from this IP. Please retry after the specified delay.",
			})
			return
		}

		c.Next()
	}
}

func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	now := time.Now()
	entry := &rateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: now,
	}

	if val, loaded := s.limiters.LoadOrStore(ip, entry); loaded {
		entry = val.(*rateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = now
		entry.mu.Unlock()
	}
	return entry.limiter
}

// cleanupStale removes limiters not used for idle, every interval.
func (s *rateLimiterStore) cleanupStale(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.removeIdle(time.Now().Add(-idle))
		}
	}
}

func (s *rateLimiterStore) removeIdle(threshold time.Time) {
	s.limiters.Range(func(key, value any) bool {
		entry := value.(*rateLimiterEntry)
		entry.mu.Lock()
		stale := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if stale {
			s.limiters.Delete(key)
		}
		return true
	})
}
