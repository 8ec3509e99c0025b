// Package ratelimiter caps how many times one client may hit a route within a fixed window.
package ratelimiter

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// sweepThreshold is the number of tracked keys above which expired windows are dropped.
const sweepThreshold = 1024

type window struct {
	count int
	start time.Time
}

// RateLimiter counts calls per key and resets each key once its interval has passed.
// A limit of zero or less disables limiting.
type RateLimiter struct {
	mu       sync.Mutex
	limit    int
	interval time.Duration
	windows  map[string]*window
	now      func() time.Time
}

func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
		now:      time.Now,
	}
}

// Allow records one call for key and reports whether it is within the limit.
// When it is not, the returned duration is how long until the window resets.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	if rl.limit <= 0 {
		return true, 0
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.interval {
		if !ok && len(rl.windows) >= sweepThreshold {
			rl.sweep(now)
		}
		rl.windows[key] = &window{count: 1, start: now}
		return true, 0
	}
	if w.count >= rl.limit {
		return false, rl.interval - now.Sub(w.start)
	}
	w.count++
	return true, 0
}

func (rl *RateLimiter) sweep(now time.Time) {
	for k, w := range rl.windows {
		if now.Sub(w.start) >= rl.interval {
			delete(rl.windows, k)
		}
	}
}

// Middleware rejects requests from a client IP over the limit with 429.
func (rl *RateLimiter) Middleware(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		ok, wait := rl.Allow(ip)
		if ok {
			c.Next()
			return
		}
		log.WithFields(logrus.Fields{"client_ip": ip, "route": c.FullPath()}).Warn("rate limit hit")
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, try again later"})
	}
}
