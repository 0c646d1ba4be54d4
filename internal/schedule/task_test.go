package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEveryStop(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	task := Every(t.Context(), time.Millisecond, func(time.Time) { calls.Add(1) })

	deadline := time.After(time.Second)
	for calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatal("callback was not called three times within a second")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	task.StopAndWait()
	if task.Running() {
		t.Fatal("Running() = true after StopAndWait")
	}

	after := calls.Load()
	time.Sleep(10 * time.Millisecond)
	if got := calls.Load(); got != after {
		t.Errorf("callback ran %d more times after stop", got-after)
	}
}

func TestEveryParentCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	task := Every(ctx, time.Hour, func(time.Time) {})
	cancel()

	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("task did not exit after parent context was cancelled")
	}
}

func TestStopFromCallback(t *testing.T) {
	t.Parallel()

	var (
		task  *Task
		ready = make(chan struct{})
		calls atomic.Int64
	)
	task = Every(t.Context(), time.Millisecond, func(time.Time) {
		<-ready
		calls.Add(1)
		task.Stop()
	})
	close(ready)

	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("task did not exit after stopping itself")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestStopIdempotent(t *testing.T) {
	t.Parallel()

	task := Every(t.Context(), time.Hour, func(time.Time) {})
	task.Stop()
	task.Stop()
	task.StopAndWait()
	task.StopAndWait()
}
