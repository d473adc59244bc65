package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig configures the per-IP rate limiting.
type RateLimitConfig struct {
	RequestsPerSecond int
	BurstSize         int
}

// RateLimiter holds one token bucket per client IP. State lives in the
// struct so each router gets its own limiter instead of a process-wide map.
type RateLimiter struct {
	config  RateLimitConfig
	mu      sync.Mutex
	clients map[string]*rate.Limiter
}

// NewRateLimiter creates a RateLimiter and starts its cleanup loop.
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		config:  config,
		clients: make(map[string]*rate.Limiter),
	}
	go rl.cleanupClients()
	return rl
}

// Middleware returns the gin handler enforcing the limits.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		rl.mu.Lock()
		limiter, exists := rl.clients[clientIP]
		if !exists {
			limiter = rate.NewLimiter(rate.Limit(rl.config.RequestsPerSecond), rl.config.BurstSize)
			rl.clients[clientIP] = limiter
		}
		rl.mu.Unlock()

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, please retry later",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// cleanupClients periodically drops all limiters so idle IPs do not
// accumulate. Coarse, but the buckets refill instantly for active clients.
func (rl *RateLimiter) cleanupClients() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		rl.clients = make(map[string]*rate.Limiter)
		rl.mu.Unlock()
	}
}
