// pkg/retry/retry.go - functions for retrying actions with a bounded delay.

package retry

import (
	"errors"
	"fmt"
	"time"

	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/logging"
)

// NonRetryable wraps an error that should not be retried.
type NonRetryable struct {
	Err error
}

func (e *NonRetryable) Error() string { return e.Err.Error() }

func (e *NonRetryable) Unwrap() error { return e.Err }

// Config defines the configuration for retry attempts. A Multiplier of 1
// keeps the interval fixed between attempts.
type Config struct {
	MaxAttempts int
	Interval    time.Duration
	Multiplier  float64
}

// Do retries a given action until it succeeds or MaxAttempts is exhausted.
func Do(cfg Config, action func() error) error {
	interval := cfg.Interval
	multiplier := cfg.Multiplier
	if multiplier <= 0 {
		multiplier = 1
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = action()
		if lastErr == nil {
			return nil
		}

		var nonRetryable *NonRetryable
		if errors.As(lastErr, &nonRetryable) {
			logging.Warn("Non-retryable error encountered",
				"attempt", attempt, "error", lastErr.Error())
			return lastErr
		}

		if attempt < cfg.MaxAttempts {
			logging.Warn("Attempt failed, retrying",
				"attempt", attempt,
				"max_attempts", cfg.MaxAttempts,
				"retry_delay", interval.String(),
				"error", lastErr.Error())
			time.Sleep(interval)
			interval = time.Duration(float64(interval) * multiplier)
		} else {
			logging.Warn("Attempt failed, no more retries",
				"attempt", attempt,
				"max_attempts", cfg.MaxAttempts,
				"error", lastErr.Error())
		}
	}

	return fmt.Errorf("action failed after %d attempts: %w", cfg.MaxAttempts, lastErr)
}
