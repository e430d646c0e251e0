package rest

import (
	"context"
	"time"
)

// withRetry runs fn up to maxRetries+1 times, sleeping attempt*baseDelay
// between attempts. Errors for which retryable returns false end the loop.
func withRetry(ctx context.Context, maxRetries int, baseDelay time.Duration, retryable func(error) bool, onRetry func(attempt int, err error), fn func(context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay < 0 {
		baseDelay = 0
	}

	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= maxRetries || !retryable(err) {
			return err
		}
		if onRetry != nil {
			onRetry(attempt+1, err)
		}
		if err := sleep(ctx, time.Duration(attempt+1)*baseDelay); err != nil {
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
