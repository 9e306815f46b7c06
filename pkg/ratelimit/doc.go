// Package ratelimit implements per-key token buckets.
//
// A bucket starts full with Capacity tokens and regains RefillRate tokens
// every RefillInterval. Each Allow takes one token; a request finding the
// bucket empty is denied without consuming anything.
//
//	limiter := ratelimit.New(ratelimit.Config{Capacity: 10, RefillRate: 1, RefillInterval: time.Minute})
//	res, err := limiter.Allow(ctx, sessionID)
//	if err == nil && !res.Allowed {
//		// retry after res.RetryAfter(time.Now())
//	}
//
// MemoryStore, the default, holds buckets in a bounded LRU, so idle keys
// are dropped once MaxKeys is reached. RedisStore keeps them in Redis so
// several processes share one limit.
package ratelimit
