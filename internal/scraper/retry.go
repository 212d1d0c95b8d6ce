package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/pfrederiksen/powerball-results/internal/draw"
)

const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 5 * time.Second
)

// AttemptFunc performs one numbered attempt and returns its outcome
type AttemptFunc func(ctx context.Context, attempt int) *draw.Outcome

// Retrier re-runs an attempt until it succeeds or the attempt budget is spent
type Retrier struct {
	maxAttempts int
	policy      backoff.BackOff
	sleep       func(ctx context.Context, d time.Duration) error
	observe     func(*draw.Outcome)
}

// RetryOption configures a Retrier
type RetryOption func(*Retrier)

// WithObserver registers a callback invoked after every attempt
func WithObserver(fn func(*draw.Outcome)) RetryOption {
	return func(r *Retrier) {
		r.observe = fn
	}
}

// WithBackOff replaces the constant inter-attempt delay policy
func WithBackOff(b backoff.BackOff) RetryOption {
	return func(r *Retrier) {
		if b != nil {
			r.policy = b
		}
	}
}

// NewRetrier creates a retrier waiting a fixed delay between attempts.
// maxAttempts below 1 is treated as 1.
func NewRetrier(maxAttempts int, delay time.Duration, opts ...RetryOption) *Retrier {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if delay < 0 {
		delay = 0
	}
	r := &Retrier{
		maxAttempts: maxAttempts,
		policy:      backoff.NewConstantBackOff(delay),
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MaxAttempts returns the attempt budget
func (r *Retrier) MaxAttempts() int {
	return r.maxAttempts
}

// Run calls fn until an attempt succeeds or the budget is used up, and returns the
// most recent outcome either way. Callers must check Outcome.Success.
func (r *Retrier) Run(ctx context.Context, fn AttemptFunc) *draw.Outcome {
	r.policy.Reset()

	var last *draw.Outcome
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		last = r.attempt(ctx, fn, attempt)
		if r.observe != nil {
			r.observe(last)
		}
		if last.Success || attempt == r.maxAttempts {
			break
		}

		delay := r.policy.NextBackOff()
		if delay == backoff.Stop {
			break
		}
		if err := r.sleep(ctx, delay); err != nil {
			break
		}
	}
	return last
}

// attempt runs fn with the attempt boundary guarded against panics and nil outcomes
func (r *Retrier) attempt(ctx context.Context, fn AttemptFunc, n int) (out *draw.Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			out = draw.Failed(fmt.Errorf("attempt %d: %v", n, rec), time.Now(), n, nil)
		}
	}()

	out = fn(ctx, n)
	if out == nil {
		out = draw.Failed(errors.New("attempt returned no outcome"), time.Now(), n, nil)
	}
	return out
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
