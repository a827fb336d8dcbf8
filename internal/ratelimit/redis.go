package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindowScript applies the same decision as MemoryStore inside Redis so
// the read-check-increment is atomic across instances.
//
// KEYS[1] window hash; ARGV: now ms, window ms, max requests.
// Returns {allowed, remaining, reset ms}.
var fixedWindowScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local max = tonumber(ARGV[3])
local count = tonumber(redis.call('HGET', KEYS[1], 'count'))
local reset = tonumber(redis.call('HGET', KEYS[1], 'reset'))
if count == nil or reset == nil or reset < now then
  reset = now + window
  redis.call('HSET', KEYS[1], 'count', 1, 'reset', reset)
  redis.call('PEXPIREAT', KEYS[1], reset + 1)
  return {1, max - 1, reset}
end
if count >= max then
  return {0, 0, reset}
end
count = redis.call('HINCRBY', KEYS[1], 'count', 1)
return {1, max - count, reset}
`)

// RedisStore shares windows between instances through Redis.
type RedisStore struct {
	client redis.Scripter
	prefix string
	now    func() time.Time
}

type RedisOption func(*RedisStore)

// WithKeyPrefix sets the Redis key prefix (default "ratelimit:").
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// WithRedisClock replaces time.Now, for tests.
func WithRedisClock(now func() time.Time) RedisOption {
	return func(s *RedisStore) { s.now = now }
}

func NewRedisStore(client redis.Scripter, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: "ratelimit:", now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) CheckAndIncrement(ctx context.Context, key string, p Policy) (Result, error) {
	now := s.now().UnixMilli()
	vals, err := fixedWindowScript.Run(ctx, s.client, []string{s.prefix + key},
		now, p.Window.Milliseconds(), p.MaxRequests).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit script: %w", err)
	}
	if len(vals) != 3 {
		return Result{}, fmt.Errorf("ratelimit script: unexpected reply length %d", len(vals))
	}
	return Result{
		Allowed:   vals[0] == 1,
		Remaining: int(vals[1]),
		ResetTime: time.UnixMilli(vals[2]),
	}, nil
}
