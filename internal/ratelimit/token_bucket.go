// Package ratelimit implements a redis-backed token bucket used in
// front of the assistant endpoint.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// tokenBucketScript refills and consumes atomically so concurrent
// requests against the same key cannot double-spend.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

local state = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(state[1])
local ts = tonumber(state[2])

if tokens == nil then
  tokens = burst
  ts = now
end

local elapsed = math.max(0, now - ts)
tokens = math.min(burst, tokens + elapsed * rate)

local allowed = 0
if tokens >= 1 then
  tokens = tokens - 1
  allowed = 1
end

redis.call('HSET', key, 'tokens', tokens, 'ts', now)
redis.call('EXPIRE', key, math.ceil(burst / rate) * 2)

return allowed
`)

// Limiter allows rate requests per second with a burst ceiling, keyed
// per user. A nil redis client disables limiting entirely.
type Limiter struct {
	rdb   *redis.Client
	rate  float64
	burst int
	log   *zap.Logger
}

func NewLimiter(rdb *redis.Client, rate float64, burst int, log *zap.Logger) *Limiter {
	return &Limiter{
		rdb:   rdb,
		rate:  rate,
		burst: burst,
		log:   log.Named("ratelimit"),
	}
}

// Allow consumes one token for the key. Redis outages fail open so a
// cache blip never takes the feature down with it.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.rdb == nil {
		return true, nil
	}

	now := float64(time.Now().UnixMilli()) / 1000
	res, err := tokenBucketScript.Run(ctx, l.rdb,
		[]string{"ratelimit:" + key},
		l.rate, l.burst, now,
	).Int()
	if err != nil {
		l.log.Warn("token bucket check failed, allowing", zap.Error(err))
		return true, nil
	}
	return res == 1, nil
}
