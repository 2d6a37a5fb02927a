package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNetwork marks transport failures: timeouts, refused connections and
	// 5xx responses.
	ErrNetwork = errors.New("network error")
	// ErrNotFound marks a missing remote resource.
	ErrNotFound = errors.New("not found")
)

// RetryableError marks an error as worth another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or any error it wraps, is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryPolicy bounds the attempts made by [RetryPolicy.Do].
type RetryPolicy struct {
	Attempts int
	// Delay before the second attempt; it doubles after every failure.
	Delay time.Duration
}

// DefaultRetry makes three attempts, waiting 1s then 2s.
var DefaultRetry = RetryPolicy{Attempts: 3, Delay: time.Second}

// Do calls fn until it succeeds, returns a non-retryable error, or the
// attempts run out. Cancelling ctx stops the wait between attempts.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay
	var lastErr error
	for i := range attempts {
		lastErr = fn()
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}

// RetryWithBackoff runs fn under [DefaultRetry].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultRetry.Do(ctx, fn)
}
