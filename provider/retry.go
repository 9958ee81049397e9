package provider

import (
	"context"
	"errors"
	"time"

	"debator/models"
)

// RetryPolicy is the shared bounded-attempt policy for both provider
// clients: exponential backoff, only transient failures re-attempted.
type RetryPolicy struct {
	MaxAttempts int // total attempts, incl. the first call
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.BaseDelay << attempt
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

// Do runs fn until it succeeds, returns a non-retryable error, or the
// attempt budget runs out. The context spans all attempts; backoff sleeps
// are cut short on cancellation.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt < p.attempts(); attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(p.delay(attempt - 1))
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		err = fn(ctx)
		if err == nil {
			return nil
		}
		var provErr *models.ProviderError
		if !errors.As(err, &provErr) || !provErr.Retryable() {
			return err
		}
	}
	return err
}
