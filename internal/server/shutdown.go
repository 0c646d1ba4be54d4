package server

import (
	"context"
	"time"

	"github.com/garrettladley/moodly/internal/xcontext"
)

// ShutdownCoordinator lets long-lived responses such as breathing streams
// notice shutdown before the server stops accepting writes.
type ShutdownCoordinator struct {
	baseCtx     context.Context
	cancel      context.CancelCauseFunc
	gracePeriod time.Duration
}

// NewShutdownCoordinator waits gracePeriod between cancelling request contexts
// and returning from InitiateShutdown.
func NewShutdownCoordinator(gracePeriod time.Duration) *ShutdownCoordinator {
	ctx, cancel := context.WithCancelCause(context.Background())
	return &ShutdownCoordinator{
		baseCtx:     ctx,
		cancel:      cancel,
		gracePeriod: gracePeriod,
	}
}

// BaseContext is used as http.Server.BaseContext.
func (sc *ShutdownCoordinator) BaseContext() context.Context {
	return sc.baseCtx
}

// InitiateShutdown cancels every request context with xcontext.ErrServerShutdown
// and blocks for the grace period.
func (sc *ShutdownCoordinator) InitiateShutdown() {
	sc.cancel(xcontext.ErrServerShutdown)
	time.Sleep(sc.gracePeriod)
}
