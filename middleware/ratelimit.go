package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// idleTTL is how long a client bucket may sit unused before it is evicted.
const idleTTL = 10 * time.Minute

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// RateLimiter is a per-client-IP token bucket
type RateLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	rate       float64 // tokens per second
	bucketSize float64 // maximum tokens
	lastSweep  time.Time
	now        func() time.Time
}

// NewRateLimiter creates a limiter allowing rate requests per second with
// bursts of up to bucketSize
func NewRateLimiter(rate float64, bucketSize float64) *RateLimiter {
	return &RateLimiter{
		buckets:    make(map[string]*bucket),
		rate:       rate,
		bucketSize: bucketSize,
		now:        time.Now,
	}
}

// Allow takes a token for key. When none is left it returns false and the
// wait until the next token.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	b, exists := rl.buckets[key]
	if !exists {
		b = &bucket{tokens: rl.bucketSize, lastRefill: now}
		rl.buckets[key] = b
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(rl.bucketSize, b.tokens+elapsed*rl.rate)
	b.lastRefill = now

	if b.tokens < 1 {
		wait := time.Duration((1 - b.tokens) / rl.rate * float64(time.Second))
		return false, wait
	}

	b.tokens--
	return true, 0
}

// sweep drops buckets that have been idle for idleTTL, at most once per TTL.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < idleTTL {
		return
	}
	for key, b := range rl.buckets {
		if now.Sub(b.lastRefill) >= idleTTL {
			delete(rl.buckets, key)
		}
	}
	rl.lastSweep = now
}

// RateLimit returns the gin middleware
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, wait := rl.Allow(c.ClientIP())
		if !allowed {
			seconds := int(math.Ceil(wait.Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(1, seconds)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
