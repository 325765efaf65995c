package retry

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)


func TestDoSucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Do(Config{MaxAttempts: 3, Interval: 0, Multiplier: 1}, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Do(Config{MaxAttempts: 2, Interval: 0, Multiplier: 1}, func() error {
		calls++
		return errors.New("always")
	})
	require.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	calls := 0
	err := Do(Config{MaxAttempts: 5, Interval: 0, Multiplier: 1}, func() error {
		calls++
		return fmt.Errorf("checking input: %w", &NonRetryable{Err: errors.New("bad input")})
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoWrappedErrorsStillRetry(t *testing.T) {
	calls := 0
	err := Do(Config{MaxAttempts: 3, Interval: 0, Multiplier: 1}, func() error {
		calls++
		return fmt.Errorf("fetching: %w", errors.New("connection reset"))
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}
