package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrUnexpectedReply = errors.New("unexpected rate limit reply")

// takeScript runs the bucket update atomically on the server.
// Reply: {allowed, remaining, reset_at_ms}.
var takeScript = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local interval = tonumber(ARGV[3])
local now = tonumber(ARGV[4])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'last')
local tokens = tonumber(state[1])
local last = tonumber(state[2])
if tokens == nil or last == nil then
  tokens = capacity
  last = now
end

local intervals = math.floor((now - last) / interval)
local cap = math.floor(capacity / rate) + 1
if intervals > cap then
  intervals = cap
end
if intervals > 0 then
  tokens = math.min(tokens + intervals * rate, capacity)
  last = now
end

local allowed = 0
if tokens > 0 then
  tokens = tokens - 1
  allowed = 1
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'last', last)
redis.call('PEXPIRE', KEYS[1], (cap + 1) * interval)
return {allowed, tokens, last + interval}
`)

// RedisStore shares buckets between processes through Redis.
type RedisStore struct {
	client redis.Scripter
	prefix string
}

// NewRedisStore creates a store whose keys are prefix followed by the
// limiter key.
func NewRedisStore(client redis.Scripter, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Take(ctx context.Context, key string, cfg Config, now time.Time) (Result, error) {
	reply, err := takeScript.Run(ctx, s.client, []string{s.prefix + key},
		cfg.Capacity,
		cfg.RefillRate,
		cfg.RefillInterval.Milliseconds(),
		now.UnixMilli(),
	).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("rate limit %s: %w", key, err)
	}
	if len(reply) != 3 {
		return Result{}, fmt.Errorf("%w: %v", ErrUnexpectedReply, reply)
	}

	return Result{
		Limit:     cfg.Capacity,
		Allowed:   reply[0] == 1,
		Remaining: int(reply[1]),
		ResetAt:   time.UnixMilli(reply[2]).UTC(),
	}, nil
}

// Reset deletes key's bucket. The client must also implement redis.Cmdable.
func (s *RedisStore) Reset(ctx context.Context, key string) error {
	c, ok := s.client.(redis.Cmdable)
	if !ok {
		return errors.New("rate limit reset: client cannot delete keys")
	}
	return c.Del(ctx, s.prefix+key).Err()
}
