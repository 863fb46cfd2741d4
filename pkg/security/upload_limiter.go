package security

import (
	"context"
	"fmt"
	"time"

	"go-jobboard-backend/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

// UploadLimiter enforces rate limits on CV uploads using a Redis sliding window
type UploadLimiter struct {
	maxPerMinute int // Max uploads per minute per IP
	maxPerDay    int // Max uploads per day per user
}

// Lua script for sliding window rate limiting
// KEYS[1] = rate limit key
// ARGV[1] = max count allowed
// ARGV[2] = window size in seconds
// ARGV[3] = current timestamp
// Returns: 1 if allowed, 0 if rate limited
const uploadRateLimitScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

local count = redis.call('ZCARD', key)

if count >= limit then
    return 0
end

redis.call('ZADD', key, now, now .. '-' .. math.random(1000000))
redis.call('EXPIRE', key, window)
return 1
`

// NewUploadLimiter creates an upload rate limiter
// Default: 10 uploads/min per IP, 50 uploads/day per user
func NewUploadLimiter(perMin, perDay int) *UploadLimiter {
	if perMin <= 0 {
		perMin = 10
	}
	if perDay <= 0 {
		perDay = 50
	}
	return &UploadLimiter{
		maxPerMinute: perMin,
		maxPerDay:    perDay,
	}
}

// AllowUpload checks if an upload is allowed based on rate limits.
// Returns (allowed, retryAfterSeconds, error). If Redis is unavailable the
// limiter fails open so infrastructure trouble never blocks candidates.
func (ul *UploadLimiter) AllowUpload(ctx context.Context, ip, userID string) (bool, int, error) {
	client := redis.Client()
	if client == nil {
		return true, 0, fmt.Errorf("rate limiter unavailable - Redis not connected")
	}

	now := time.Now().Unix()

	allowed, err := ul.check(ctx, client, "upl:ip:"+ip, ul.maxPerMinute, 60, now)
	if err != nil {
		return true, 0, err
	}
	if !allowed {
		return false, 60, nil
	}

	allowed, err = ul.check(ctx, client, "upl:user:"+userID, ul.maxPerDay, 86400, now)
	if err != nil {
		return true, 0, err
	}
	if !allowed {
		return false, 3600, nil
	}

	return true, 0, nil
}

func (ul *UploadLimiter) check(ctx context.Context, client *goredis.Client, key string, limit, windowSecs int, now int64) (bool, error) {
	res, err := client.Eval(ctx, uploadRateLimitScript, []string{key},
		limit, windowSecs, now).Int64()
	if err != nil {
		return true, err
	}
	return res == 1, nil
}
