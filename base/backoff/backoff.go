package backoff

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// Strategy computes the wait before the next attempt.
type Strategy interface {
	Duration(attempt int, start time.Duration) time.Duration
}

// Backoff sleeps between attempts. NextDuration is the wait of the next call
// to Backoff.
type Backoff struct {
	LastDuration time.Duration
	NextDuration time.Duration
	start        time.Duration
	limit        time.Duration
	jitter       float64
	count        int
	strategy     Strategy
}

func NewBackoff(strategy Strategy, start time.Duration, limit time.Duration) *Backoff {
	b := &Backoff{strategy: strategy, start: start, limit: limit}
	b.Reset()
	return b
}

// WithJitter adds up to ratio*wait of random wait.
func (b *Backoff) WithJitter(ratio float64) *Backoff {
	b.jitter = ratio
	b.NextDuration = b.next()
	return b
}

func (b *Backoff) Reset() {
	b.count = 0
	b.LastDuration = 0
	b.NextDuration = b.next()
}

// Attempts is the number of completed waits since the last Reset.
func (b *Backoff) Attempts() int {
	return b.count
}

// Backoff waits NextDuration. It returns ctx's error if ctx ends first.
func (b *Backoff) Backoff(ctx context.Context) error {
	timer := time.NewTimer(b.NextDuration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	b.count++
	b.LastDuration = b.NextDuration
	b.NextDuration = b.next()
	return nil
}

func (b *Backoff) next() time.Duration {
	d := b.strategy.Duration(b.count, b.start)
	if b.jitter > 0 {
		d += time.Duration(rand.Float64() * b.jitter * float64(d))
	}
	if b.limit > 0 && d > b.limit {
		d = b.limit
	}
	return d
}

type exponential struct{}

func (exponential) Duration(attempt int, start time.Duration) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt))) * start
}

// NewExponential doubles the wait from start up to limit.
func NewExponential(start time.Duration, limit time.Duration) *Backoff {
	return NewBackoff(exponential{}, start, limit)
}

type constant struct{}

func (constant) Duration(_ int, start time.Duration) time.Duration {
	return start
}

// NewConstant always waits start.
func NewConstant(start time.Duration) *Backoff {
	return NewBackoff(constant{}, start, 0)
}
