package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/pkg/redis"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit     int
	Window    time.Duration
	KeyPrefix string
	KeyFunc   func(*gin.Context) string
}

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

var (
	rateLimitStore sync.Map
	cleanupOnce    sync.Once
)

// startCleanup evicts expired fallback entries so the in-memory store
// stays bounded under IP-diverse traffic while Redis is down.
func startCleanup() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			sweepExpired(time.Now())
		}
	}()
}

func sweepExpired(now time.Time) {
	rateLimitStore.Range(func(key, value interface{}) bool {
		entry := value.(*rateLimitEntry)
		entry.mu.Lock()
		if now.After(entry.resetAt) {
			rateLimitStore.Delete(key)
		}
		entry.mu.Unlock()
		return true
	})
}

// Lua script for atomic increment with TTL on first set
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// DefaultRateLimitConfig returns sensible defaults for API rate limiting
func DefaultRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	if limit < 1 {
		limit = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// RateLimit enforces a fixed-window counter per key, backed by Redis with
// an in-memory fallback when Redis is unavailable (fail open across
// instances, bounded within one).
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	cleanupOnce.Do(startCleanup)

	return func(c *gin.Context) {
		key := cfg.KeyPrefix + cfg.KeyFunc(c)

		count, ttl, ok := redisIncrement(c, key, cfg.Window)
		if !ok {
			count, ttl = memoryIncrement(key, cfg.Window)
		}

		remaining := cfg.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > cfg.Limit {
			c.Header("Retry-After", strconv.Itoa(ttl))
			response.Error(c, http.StatusTooManyRequests, "Too many requests. Please slow down.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func redisIncrement(c *gin.Context, key string, window time.Duration) (count, ttl int, ok bool) {
	client := redis.Client()
	if client == nil {
		return 0, 0, false
	}

	res, err := client.Eval(c.Request.Context(), rateLimitLuaScript, []string{key},
		int(window.Seconds())).Int64Slice()
	if err != nil || len(res) != 2 {
		return 0, 0, false
	}
	return int(res[0]), int(res[1]), true
}

func memoryIncrement(key string, window time.Duration) (count, ttl int) {
	now := time.Now()
	v, _ := rateLimitStore.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(window)})
	entry := v.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(window)
	}
	entry.count++
	return entry.count, int(time.Until(entry.resetAt).Seconds())
}
