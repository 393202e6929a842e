package ctxutil

import (
	"context"
	"errors"
	"fmt"
)

// ErrorWithCause takes an error which should be returned from a function that
// also takes a context, and the context itself. If the context was canceled or
// its deadline was exceeded *with a cause*, and the error returned was the
// `ctx.Err()` without including the cause, then this function will return a new
// error that wraps both. This is an ergonomic convenience to adapt functions
// which respond to `ctx.Done()` but don't include the cause in their returned
// error, likely because they were written before context causes were added.
func ErrorWithCause(err error, ctx context.Context) error {
	cause := context.Cause(ctx)
	if cause != nil && errors.Is(err, ctx.Err()) && !errors.Is(err, cause) {
		return fmt.Errorf("%w -- Caused by: %w", err, cause)
	}
	return err
}
