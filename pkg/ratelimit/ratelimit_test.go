package ratelimit_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cgmportal/pkg/ratelimit"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newLimiter(t *testing.T, cfg ratelimit.Config) (*ratelimit.Limiter, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	return ratelimit.New(cfg, ratelimit.WithClock(clock.Now)), clock
}

func allow(t *testing.T, l *ratelimit.Limiter, key string) ratelimit.Result {
	t.Helper()
	res, err := l.Allow(context.Background(), key)
	require.NoError(t, err)
	return res
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := ratelimit.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second}
	require.NoError(t, valid.Validate())

	for name, cfg := range map[string]ratelimit.Config{
		"capacity": {RefillRate: 1, RefillInterval: time.Second},
		"rate":     {Capacity: 1, RefillInterval: time.Second},
		"interval": {Capacity: 1, RefillRate: 1},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, cfg.Validate(), ratelimit.ErrInvalidConfig)
			assert.Panics(t, func() { ratelimit.New(cfg) })
		})
	}
}

func TestLimiter_Allow(t *testing.T) {
	t.Parallel()

	l, clock := newLimiter(t, ratelimit.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Minute})

	first := allow(t, l, "s1")
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)
	assert.Equal(t, 2, first.Limit)

	assert.True(t, allow(t, l, "s1").Allowed)

	denied := allow(t, l, "s1")
	assert.False(t, denied.Allowed)
	assert.Equal(t, 0, denied.Remaining)
	assert.Equal(t, time.Minute, denied.RetryAfter(clock.Now()))

	// Other keys have their own bucket.
	assert.True(t, allow(t, l, "s2").Allowed)

	clock.Advance(time.Minute)
	refilled := allow(t, l, "s1")
	assert.True(t, refilled.Allowed)
	assert.Equal(t, 0, refilled.Remaining)
	assert.Zero(t, refilled.RetryAfter(clock.Now()))
}

func TestLimiter_RefillCapsAtCapacity(t *testing.T) {
	t.Parallel()

	l, clock := newLimiter(t, ratelimit.Config{Capacity: 3, RefillRate: 2, RefillInterval: time.Second})
	for range 3 {
		require.True(t, allow(t, l, "k").Allowed)
	}

	clock.Advance(24 * time.Hour)
	res := allow(t, l, "k")
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.Remaining)
}

func TestLimiter_Reset(t *testing.T) {
	t.Parallel()

	l, _ := newLimiter(t, ratelimit.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})
	require.True(t, allow(t, l, "k").Allowed)
	require.False(t, allow(t, l, "k").Allowed)

	require.NoError(t, l.Reset(context.Background(), "k"))
	assert.True(t, allow(t, l, "k").Allowed)
}

func TestLimiter_Concurrent(t *testing.T) {
	t.Parallel()

	l, _ := newLimiter(t, ratelimit.Config{Capacity: 50, RefillRate: 1, RefillInterval: time.Hour})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := l.Allow(context.Background(), "shared")
			if err == nil && res.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}
