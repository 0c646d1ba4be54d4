package xcontext

import (
	"context"
	"errors"
)

// ErrServerShutdown is the cancellation cause of every request context once
// the server begins shutting down.
var ErrServerShutdown = errors.New("server shutting down")

type shutdownInProgressKey struct{}

// SetShutdownInProgress marks the context as being in a shutdown state.
func SetShutdownInProgress(ctx context.Context, inProgress bool) context.Context {
	return context.WithValue(ctx, shutdownInProgressKey{}, inProgress)
}

// IsShutdownInProgress reports whether ctx was marked as shutting down or was
// cancelled with ErrServerShutdown. A plain client disconnect reports false.
func IsShutdownInProgress(ctx context.Context) bool {
	if inProgress, ok := ctx.Value(shutdownInProgressKey{}).(bool); ok && inProgress {
		return true
	}
	return errors.Is(context.Cause(ctx), ErrServerShutdown)
}
