package backoff

import (
	"context"
	"time"
)

// Strategy computes the delay before the n-th retry (n starts at 0)
type Strategy interface {
	Delay(n int, start time.Duration) time.Duration
}

// Backoff sleeps between reconnect attempts. It is not safe for concurrent use.
type Backoff struct {
	strategy Strategy
	start    time.Duration
	limit    time.Duration
	attempts int
}

func New(strategy Strategy, start, limit time.Duration) *Backoff {
	return &Backoff{strategy: strategy, start: start, limit: limit}
}

// Reset is called after a successful attempt
func (b *Backoff) Reset() {
	b.attempts = 0
}

// Attempts returns how many times Wait completed since the last Reset
func (b *Backoff) Attempts() int {
	return b.attempts
}

// Next returns the delay the following Wait will sleep
func (b *Backoff) Next() time.Duration {
	d := b.strategy.Delay(b.attempts, b.start)
	if b.limit > 0 && d > b.limit {
		d = b.limit
	}
	return d
}

// Wait sleeps for Next() or until ctx is done, in which case ctx.Err() is returned
func (b *Backoff) Wait(ctx context.Context) error {
	t := time.NewTimer(b.Next())
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		b.attempts++
		return nil
	}
}

type exponential struct{}

func (exponential) Delay(n int, start time.Duration) time.Duration {
	if n > 30 {
		n = 30
	}
	return start << uint(n)
}

func NewExponential(start, limit time.Duration) *Backoff {
	return New(exponential{}, start, limit)
}

type constant struct{}

func (constant) Delay(_ int, start time.Duration) time.Duration {
	return start
}

func NewConstant(d time.Duration) *Backoff {
	return New(constant{}, d, 0)
}
