// Package ratelimit throttles the credential endpoints with a redis
// token bucket. State lives in redis, not in-process, so every API
// instance shares the same budget per client.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const tokenBucketLua = `
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])

if rate <= 0 or burst <= 0 then
  return {1, 0, burst}
end

local data = redis.call("HMGET", key, "tokens", "ts")
local tokens = tonumber(data[1])
local ts = tonumber(data[2])
if tokens == nil then
  tokens = burst
end
if ts == nil then
  ts = now
end

local delta = math.max(0, now - ts)
local refill = (delta * rate) / 1000.0
tokens = math.min(burst, tokens + refill)

local allowed = tokens >= requested
local wait_ms = 0
if allowed then
  tokens = tokens - requested
else
  wait_ms = math.ceil((requested - tokens) * 1000.0 / rate)
end

redis.call("HMSET", key, "tokens", tokens, "ts", now)
redis.call("PEXPIRE", key, math.ceil((burst / rate) * 1000.0 * 2))

return {allowed and 1 or 0, wait_ms, tokens}
`

// Limiter is a per-key token bucket backed by redis.
type Limiter struct {
	rdb    *redis.Client
	prefix string
	rate   float64
	burst  float64
	script *redis.Script
	now    func() time.Time
}

// New creates a Limiter. rate is tokens per second, burst the bucket
// capacity. A nil client or non-positive rate disables limiting.
func New(rdb *redis.Client, prefix string, rate, burst float64) *Limiter {
	if prefix == "" {
		prefix = "genkan:ratelimit"
	}
	return &Limiter{
		rdb:    rdb,
		prefix: prefix,
		rate:   rate,
		burst:  burst,
		script: redis.NewScript(tokenBucketLua),
		now:    time.Now,
	}
}

// Allow reports whether the caller identified by key may proceed, and
// if not, how long until the next token. It never blocks; HTTP callers
// convert a denial into 429 immediately.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	if l == nil || l.rdb == nil || l.rate <= 0 || l.burst <= 0 {
		return true, 0, nil
	}

	bucket := fmt.Sprintf("%s:%s", l.prefix, key)
	res, err := l.script.Run(ctx, l.rdb, []string{bucket}, l.rate, l.burst, l.now().UnixMilli(), 1).Result()
	if err != nil {
		return false, 0, fmt.Errorf("ratelimit eval: %w", err)
	}

	values, ok := res.([]interface{})
	if !ok || len(values) < 2 {
		return false, 0, fmt.Errorf("ratelimit invalid result")
	}

	allowed := toInt64(values[0]) == 1
	wait := time.Duration(toInt64(values[1])) * time.Millisecond
	return allowed, wait, nil
}

func toInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case string:
		var n int64
		fmt.Sscanf(t, "%d", &n)
		return n
	default:
		return 0
	}
}
