package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidConfig = errors.New("invalid rate limit configuration")

// Config defines the token bucket of every key.
type Config struct {
	Capacity       int           `env:"UPLOAD_RATE_CAPACITY" envDefault:"10"`
	RefillRate     int           `env:"UPLOAD_RATE_REFILL" envDefault:"1"`
	RefillInterval time.Duration `env:"UPLOAD_RATE_INTERVAL" envDefault:"1m"`
	MaxKeys        int           `env:"UPLOAD_RATE_MAX_KEYS" envDefault:"10000"`
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	case c.RefillRate <= 0:
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	case c.RefillInterval <= 0:
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// maxIntervals caps the refill count so long idle periods cannot overflow.
func (c Config) maxIntervals() int64 {
	return int64(c.Capacity/c.RefillRate + 1)
}

// Result is the outcome of one Allow call.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
	Allowed   bool
}

// RetryAfter returns how long a denied caller should wait, measured from now.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed || !r.ResetAt.After(now) {
		return 0
	}
	return r.ResetAt.Sub(now)
}

// Store keeps bucket state. Take refills key's bucket as of now and
// removes one token when one is left.
type Store interface {
	Take(ctx context.Context, key string, cfg Config, now time.Time) (Result, error)
	Reset(ctx context.Context, key string) error
}

// Limiter applies one Config to many keys.
type Limiter struct {
	cfg   Config
	store Store
	now   func() time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// WithStore replaces the in-memory store.
func WithStore(s Store) Option {
	return func(l *Limiter) {
		if s != nil {
			l.store = s
		}
	}
}

// New creates a Limiter. It panics on an invalid cfg, which is a
// programming error caught at startup.
func New(cfg Config, opts ...Option) *Limiter {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	l := &Limiter{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	if l.store == nil {
		l.store = NewMemoryStore(cfg.MaxKeys)
	}
	return l
}

// Allow takes a token from key's bucket.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	return l.store.Take(ctx, key, l.cfg, l.now())
}

// Reset forgets key's bucket.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.store.Reset(ctx, key)
}
