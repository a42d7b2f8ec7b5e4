package retry

import (
	"context"
	"time"
)

// Do runs fn until it succeeds, returns an error retryable rejects, or the
// policy's retry budget is spent. onRetry, when non-nil, is called before each
// wait with the upcoming retry number and the error that caused it.
// The last error is returned; a cancelled ctx ends the loop with ctx.Err().
func Do(ctx context.Context, p Policy, retryable func(error) bool, onRetry func(attempt int, err error), fn func(context.Context) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt >= p.MaxRetries || retryable == nil || !retryable(err) {
			return err
		}
		if onRetry != nil {
			onRetry(attempt+1, err)
		}

		timer := time.NewTimer(p.Delay(attempt + 1))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
