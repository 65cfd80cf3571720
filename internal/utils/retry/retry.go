// Package retry provides a bounded retry combinator for operations that can
// fail transiently under contention, decoupled from the operation itself via
// an error-classification function.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy bounds the retry loop. Delay before attempt n (1-based, from the
// second attempt on) is n * Backoff, so waits increase linearly.
type Policy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// Classifier reports whether an error is transient and worth retrying.
type Classifier func(error) bool

// ExhaustedError wraps the last transient error after the attempt budget ran
// out.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retry budget exhausted after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Do runs fn up to p.MaxAttempts times. Errors the classifier marks as
// transient trigger another attempt after an increasing backoff; any other
// error is returned immediately. When the budget is exhausted the last error
// is returned wrapped in *ExhaustedError. Context cancellation aborts the
// wait and returns ctx.Err().
func Do(ctx context.Context, p Policy, transient Classifier, fn func(context.Context) error) error {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err = fn(ctx)
		if err == nil || !transient(err) {
			return err
		}
		if attempt == p.MaxAttempts {
			break
		}

		timer := time.NewTimer(time.Duration(attempt) * p.Backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return &ExhaustedError{Attempts: p.MaxAttempts, Err: err}
}
