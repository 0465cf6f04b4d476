// Package retry runs an operation again after failures, waiting with
// exponential backoff and jitter between attempts.
package retry

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// Operation receives the context for this attempt and its number, starting at 1.
type Operation = func(ctx context.Context, attempt int) error

type Config struct {
	MaxRetries    int
	BackoffFactor float64
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	Jitter        time.Duration

	// AttemptTimeout bounds every attempt on its own. Zero leaves it to ctx.
	AttemptTimeout time.Duration

	// Retryable reports whether err is worth another attempt.
	// Nil means every error is retried.
	Retryable func(err error) bool

	// OnRetry is called before waiting for the next attempt.
	OnRetry func(attempt int, err error, wait time.Duration)
}

// Retrier is safe for concurrent use.
type Retrier struct {
	config Config
}

func NewRetrier(config *Config) *Retrier {
	return &Retrier{
		config: *config,
	}
}

func (r *Retrier) Do(ctx context.Context, op Operation) error {
	for attempt := 1; ; attempt++ {
		err := r.run(ctx, op, attempt)
		if err == nil {
			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt > r.config.MaxRetries {
			return err
		}
		if r.config.Retryable != nil && !r.config.Retryable(err) {
			return err
		}

		wait := r.Backoff(attempt)
		if r.config.OnRetry != nil {
			r.config.OnRetry(attempt, err, wait)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (r *Retrier) run(ctx context.Context, op Operation, attempt int) error {
	if r.config.AttemptTimeout <= 0 {
		return op(ctx, attempt)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, r.config.AttemptTimeout)
	defer cancel()
	return op(attemptCtx, attempt)
}

// Backoff is the wait after the given failed attempt: InitialDelay grown by
// BackoffFactor per attempt, capped at MaxDelay, plus up to Jitter.
func (r *Retrier) Backoff(attempt int) time.Duration {
	factor := max(r.config.BackoffFactor, 1)
	d := float64(r.config.InitialDelay) * math.Pow(factor, float64(attempt-1))
	if r.config.MaxDelay > 0 && d > float64(r.config.MaxDelay) {
		d = float64(r.config.MaxDelay)
	}

	wait := time.Duration(d)
	if r.config.Jitter > 0 {
		wait += rand.N(r.config.Jitter)
	}
	return wait
}
