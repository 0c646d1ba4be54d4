package breathing

import (
	"context"
	"sync"
	"time"

	"github.com/garrettladley/moodly/internal/schedule"
)

const DefaultTickInterval = time.Second

// Runner drives a Timer from a scheduled task. Every way of leaving the
// running state (Pause, Reset, Start with a new exercise, completion, Close,
// or cancellation of the Start context) stops the task.
type Runner struct {
	mu       sync.Mutex
	timer    *Timer
	interval time.Duration
	task     *schedule.Task
	// generation guards against a tick from a stopped task landing after a restart
	generation uint64
	events     []chan Event
	closed     bool
}

type RunnerOption func(*Runner)

// WithTickInterval overrides the one second tick. Intended for tests and demos.
func WithTickInterval(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		timer:    NewTimer(Exercise{}),
		interval: DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Subscribe registers an observer channel. When the channel is full the oldest
// pending event is dropped so the latest state always gets through.
// Channels are closed by Close.
func (r *Runner) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		close(ch)
		return ch
	}
	r.events = append(r.events, ch)
	return ch
}

// Start resets the timer to exercise and begins ticking. Any task from a
// previous exercise is stopped first. The task also stops when ctx ends.
func (r *Runner) Start(ctx context.Context, exercise Exercise) error {
	if err := exercise.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRunnerClosed
	}

	r.stopTaskLocked()
	r.timer.Start(exercise)
	r.startTaskLocked(ctx)
	r.emitLocked(EventStarted)
	return nil
}

// Pause stops the task and freezes phase, cycle and elapsed.
func (r *Runner) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.timer.State().Running {
		return
	}

	r.stopTaskLocked()
	r.timer.Pause()
	r.emitLocked(EventPaused)
}

// Resume continues a paused exercise under ctx.
func (r *Runner) Resume(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.timer.State()
	if r.closed || st.Running || st.Completed() || r.timer.Exercise().Validate() != nil {
		return
	}

	r.timer.Resume()
	r.startTaskLocked(ctx)
	r.emitLocked(EventResumed)
}

// Reset stops the task and returns the timer to its initial state.
func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopTaskLocked()
	r.timer.Reset()
	r.emitLocked(EventReset)
}

// Close stops the task, waits for it to exit and closes every observer channel.
// It is safe to call more than once.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	task := r.task
	r.stopTaskLocked()
	events := r.events
	r.events = nil
	r.mu.Unlock()

	if task != nil {
		<-task.Done()
	}
	for _, ch := range events {
		close(ch)
	}
}

func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer.State()
}

func (r *Runner) Exercise() Exercise {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer.Exercise()
}

// Scheduled reports whether a tick task is currently alive.
func (r *Runner) Scheduled() bool {
	r.mu.Lock()
	task := r.task
	r.mu.Unlock()
	return task != nil && task.Running()
}

func (r *Runner) startTaskLocked(ctx context.Context) {
	r.generation++
	gen := r.generation
	r.task = schedule.Every(ctx, r.interval, func(time.Time) {
		r.tick(gen)
	})
}

func (r *Runner) stopTaskLocked() {
	if r.task == nil {
		return
	}
	r.task.Stop()
	r.task = nil
	r.generation++
}

func (r *Runner) tick(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.generation || r.closed {
		return
	}

	before := r.timer.State()
	after := r.timer.Tick()

	switch {
	case after.Completed():
		r.stopTaskLocked()
		r.emitLocked(EventCompleted)
	case after.Phase != before.Phase:
		r.emitLocked(EventPhaseChange)
	default:
		r.emitLocked(EventTick)
	}
}

func (r *Runner) emitLocked(typ EventType) {
	ev := Event{
		Type:     typ,
		Exercise: r.timer.Exercise().Key,
		State:    r.timer.State(),
		At:       time.Now(),
	}
	for _, ch := range r.events {
		select {
		case ch <- ev:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}
