// Package schedule runs periodic callbacks whose lifetime is bound to a context.
package schedule

import (
	"context"
	"time"
)

// Task is a periodic callback. It stops when Stop is called or when the context
// it was started with ends, whichever happens first.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Every calls fn once per interval on a new goroutine until the task is stopped.
// Once Done is closed fn will not be called again.
func Every(ctx context.Context, interval time.Duration, fn func(time.Time)) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go t.run(ctx, interval, fn)
	return t
}

func (t *Task) run(ctx context.Context, interval time.Duration, fn func(time.Time)) {
	defer close(t.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			// a tick and a cancellation can be ready together
			if ctx.Err() != nil {
				return
			}
			fn(now)
		}
	}
}

// Stop cancels the task without waiting. Safe to call more than once and from
// inside the callback.
func (t *Task) Stop() {
	t.cancel()
}

// Done is closed once the task's goroutine has exited.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// StopAndWait cancels the task and blocks until its goroutine has exited.
// Must not be called from inside the callback.
func (t *Task) StopAndWait() {
	t.cancel()
	<-t.done
}

// Running reports whether the task's goroutine is still alive.
func (t *Task) Running() bool {
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}
