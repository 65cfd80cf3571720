package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finvolt/banking-core/internal/utils/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFlaky = errors.New("write conflict")

func isFlaky(err error) bool {
	return errors.Is(err, errFlaky)
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), retry.Policy{MaxAttempts: 3, Backoff: time.Millisecond}, isFlaky, func(ctx context.Context) error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesTransientThenSucceeds(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), retry.Policy{MaxAttempts: 3, Backoff: time.Millisecond}, isFlaky, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errFlaky
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_DoesNotRetryNonTransient(t *testing.T) {
	fatal := errors.New("insufficient funds")
	calls := 0
	err := retry.Do(context.Background(), retry.Policy{MaxAttempts: 5, Backoff: time.Millisecond}, isFlaky, func(ctx context.Context) error {
		calls++
		return fatal
	})
	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
}

func TestDo_ExhaustsBudget(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), retry.Policy{MaxAttempts: 3, Backoff: time.Millisecond}, isFlaky, func(ctx context.Context) error {
		calls++
		return errFlaky
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)

	var exhausted *retry.ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)
	// The underlying transient error stays reachable for classification.
	assert.ErrorIs(t, err, errFlaky)
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := retry.Do(ctx, retry.Policy{MaxAttempts: 3, Backoff: time.Second}, isFlaky, func(ctx context.Context) error {
		calls++
		return errFlaky
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDo_ZeroMaxAttemptsRunsOnce(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), retry.Policy{}, isFlaky, func(ctx context.Context) error {
		calls++
		return errFlaky
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
