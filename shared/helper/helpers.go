package helper

import (
	"fmt"
)

var ErrMaxAttempts = fmt.Errorf("max attempts reached")

// Retry runs fn until it succeeds or maxAttempts failures have accumulated.
// The returned error wraps both ErrMaxAttempts and the last failure.
func Retry(maxAttempts int, fn func() error) error {
	numAttempts := 0
	for {
		err := fn()
		if err == nil {
			return nil
		}
		numAttempts++
		if numAttempts >= maxAttempts {
			return fmt.Errorf("%w: %d, %w", ErrMaxAttempts, numAttempts, err)
		}
	}
}
