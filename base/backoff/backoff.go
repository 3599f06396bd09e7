// Package backoff spaces out retries of lock acquisition and connection dials.
package backoff

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// Strategy returns the wait before retry n (0-based) given the base step
type Strategy func(n int, step time.Duration) time.Duration

// Exponential doubles the wait on every retry
func Exponential(n int, step time.Duration) time.Duration {
	return time.Duration(math.Pow(2, float64(n))) * step
}

// Linear grows the wait by one step on every retry
func Linear(n int, step time.Duration) time.Duration {
	return time.Duration(n+1) * step
}

type Backoff struct {
	strategy Strategy
	step     time.Duration
	limit    time.Duration
	// jitter is the fraction of each wait that is randomized, in [0, 1]
	jitter  float64
	retries int
}

type Option func(*Backoff)

// WithJitter randomizes up to f of each wait so that contending callers spread out
func WithJitter(f float64) Option {
	return func(b *Backoff) {
		if f < 0 {
			f = 0
		} else if f > 1 {
			f = 1
		}
		b.jitter = f
	}
}

func New(strategy Strategy, step, limit time.Duration, opts ...Option) *Backoff {
	b := &Backoff{strategy: strategy, step: step, limit: limit}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func NewExponential(step, limit time.Duration, opts ...Option) *Backoff {
	return New(Exponential, step, limit, opts...)
}

func NewLinear(step, limit time.Duration, opts ...Option) *Backoff {
	return New(Linear, step, limit, opts...)
}

// Retries is the number of waits completed since the last Reset
func (b *Backoff) Retries() int {
	return b.retries
}

func (b *Backoff) Reset() {
	b.retries = 0
}

// Next is the wait the following Backoff call sleeps, before jitter
func (b *Backoff) Next() time.Duration {
	d := b.strategy(b.retries, b.step)
	if b.limit > 0 && (d > b.limit || d <= 0) {
		d = b.limit
	}
	return d
}

// Backoff sleeps for the next wait. It returns ctx.Err() if ctx is done first.
func (b *Backoff) Backoff(ctx context.Context) error {
	d := b.Next()
	if b.jitter > 0 {
		spread := time.Duration(float64(d) * b.jitter)
		d = d - spread + time.Duration(rand.Int63n(int64(spread)+1))
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		b.retries++
		return nil
	}
}

// Retry calls f until it succeeds, attempts calls were made, or ctx is done.
// It returns the last error of f, or ctx.Err() when ctx ended the wait.
func Retry(ctx context.Context, b *Backoff, attempts int, f func(attempt int) error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			if werr := b.Backoff(ctx); werr != nil {
				return werr
			}
		}
		if err = f(i); err == nil {
			return nil
		}
	}
	return err
}
