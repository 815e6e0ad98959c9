package retry

// Exponential backoff with full jitter for calls to remote APIs.
// A StatusError with code 429 or 5xx is retried, as is any error marked Temporary.
// A server-provided RetryAfter on a 429 replaces the jittered delay.

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

type Options struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	// OnRetry is called before each sleep with the failed attempt number (0-based)
	OnRetry func(attempt int, delay time.Duration, err error)
}

// StatusError is a failed API response with its status code
type StatusError struct {
	Code       int
	Message    string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	if e == nil {
		return "api error: <nil>"
	}
	if e.Message == "" {
		return fmt.Sprintf("api error (%d)", e.Code)
	}
	return fmt.Sprintf("api error (%d): %s", e.Code, e.Message)
}

type temporaryError struct{ err error }

func (e *temporaryError) Error() string { return e.err.Error() }
func (e *temporaryError) Unwrap() error { return e.err }

// Temporary marks err as worth retrying (network failures and the like)
func Temporary(err error) error {
	if err == nil {
		return nil
	}
	return &temporaryError{err: err}
}

func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var te *temporaryError
	if errors.As(err, &te) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		switch se.Code {
		case 429, 500, 502, 503, 504:
			return true
		}
	}
	return false
}

func clamp(d, max time.Duration) time.Duration {
	if max > 0 && d > max {
		return max
	}
	return d
}

// FullJitterSleep picks a delay in [0, min(maxDelay, baseDelay*2^attempt)]
func FullJitterSleep(attempt int, baseDelay, maxDelay time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if baseDelay <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30
	}
	maxForAttempt := clamp(baseDelay<<attempt, maxDelay)
	if maxForAttempt <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(maxForAttempt) + 1))
}

// Do calls fn until it succeeds, returns a non-retryable error,
// runs out of retries, or ctx is done
func Do(ctx context.Context, opts Options, fn func() error) error {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = 300 * time.Millisecond
	}

	totalAttempts := 1 + opts.MaxRetries
	var lastErr error

	for attempt := 0; attempt < totalAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsRetryable(err) || attempt == totalAttempts-1 {
			return lastErr
		}

		sleep := FullJitterSleep(attempt, opts.BaseDelay, opts.MaxDelay)

		var se *StatusError
		if errors.As(err, &se) && se.Code == 429 && se.RetryAfter > 0 {
			sleep = clamp(se.RetryAfter, opts.MaxDelay)
		}
		if opts.OnRetry != nil {
			opts.OnRetry(attempt, sleep, err)
		}

		t := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}

	return lastErr
}
