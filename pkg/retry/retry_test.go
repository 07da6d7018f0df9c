package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	policy := Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}
	err := policy.Do(context.Background(), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoRecoversWithinBudget(t *testing.T) {
	calls := 0
	policy := Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}
	err := policy.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoReturnsLastErrorAfterExhaustion(t *testing.T) {
	calls := 0
	boom := errors.New("still down")
	policy := Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}
	err := policy.Do(context.Background(), func() error {
		calls++
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestDoLinearWaitGrowsWithAttempt(t *testing.T) {
	base := 10 * time.Millisecond
	policy := Policy{MaxAttempts: 3, BaseDelay: base}
	start := time.Now()
	_ = policy.Do(context.Background(), func() error {
		return errors.New("always")
	})
	elapsed := time.Since(start)
	// waits are 1*base then 2*base
	assert.GreaterOrEqual(t, elapsed, 3*base)
}

func TestDoStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	policy := Policy{MaxAttempts: 3, BaseDelay: time.Second}
	err := policy.Do(ctx, func() error {
		return errors.New("transient")
	})
	require.ErrorIs(t, err, context.Canceled)
}
