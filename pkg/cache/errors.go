package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound reports that a backend holds no entry for the key.
	ErrNotFound = errors.New("not found")

	// ErrCacheMiss reports a lookup that fell through every backend.
	ErrCacheMiss = errors.New("cache miss")
)

// RetryableError marks a transient backend failure, typically a dropped
// Redis connection, as worth another attempt.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err carries the transient marker anywhere
// in its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn up to three times, doubling the wait between
// attempts starting from one second. Errors not marked Retryable return
// immediately; cancelling the context aborts the wait.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3

	delay := time.Second
	var lastErr error
	for i := 0; i < attempts; i++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !IsRetryable(lastErr) {
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
