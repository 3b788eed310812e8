package watcher

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned when a wrapped check exceeds its duration bound.
// It stays distinguishable from the check's own errors for diagnostics,
// but is otherwise handled like any other per-source failure.
var ErrTimeout = errors.New("check timed out")

// WithTimeout runs fn under a duration bound. On expiry it stops waiting
// and returns ErrTimeout; otherwise it forwards fn's own result
// unchanged. The underlying work is signalled through ctx but not
// otherwise cancelled - all checks are read-only and idempotent, so
// abandoning a result is safe.
func WithTimeout[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		value, err := fn(ctx)
		done <- outcome{value: value, err: err}
	}()

	select {
	case result := <-done:
		return result.value, result.err
	case <-ctx.Done():
		var zero T
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, ErrTimeout
		}
		return zero, ctx.Err()
	}
}
