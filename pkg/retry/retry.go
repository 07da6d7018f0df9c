package retry

import (
	"context"
	"time"
)

// Policy bounds repeated attempts of a fallible operation. The wait after a
// failed attempt n is n*BaseDelay, so the delay grows linearly with the
// attempt count.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// Do runs fn until it succeeds or MaxAttempts is exhausted, returning the
// last error. The wait between attempts honours context cancellation.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == attempts {
			break
		}

		wait := time.Duration(attempt) * p.BaseDelay
		if wait <= 0 {
			continue
		}
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}
