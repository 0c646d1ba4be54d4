package breathing

// State is a snapshot of a Timer.
type State struct {
	Phase    Phase   `json:"phase"`
	Elapsed  int     `json:"elapsed"`
	Cycle    int     `json:"cycle"`
	Progress float64 `json:"progress"`
	Running  bool    `json:"running"`
}

// Completed reports whether the exercise has finished.
func (s State) Completed() bool {
	return s.Phase == PhaseCompleted
}

// Timer is the breathing phase state machine. It advances only when Tick is
// called and is not safe for concurrent use; Runner adds scheduling and locking.
//
// While running, Elapsed stays below the current phase's length: reaching the
// boundary moves to the next phase (skipping a zero-length hold), the next
// cycle, or Completed.
type Timer struct {
	exercise Exercise
	state    State
	// seconds spent across all finished phases plus the current one
	total int
}

func NewTimer(exercise Exercise) *Timer {
	t := &Timer{exercise: exercise}
	t.Reset()
	return t
}

func (t *Timer) Exercise() Exercise {
	return t.exercise
}

func (t *Timer) State() State {
	return t.state
}

// Start switches to exercise, resets all progress and starts running.
func (t *Timer) Start(exercise Exercise) {
	t.exercise = exercise
	t.Reset()
	t.state.Running = true
}

// Pause stops the clock without touching phase, cycle or elapsed.
func (t *Timer) Pause() {
	t.state.Running = false
}

// Resume restarts the clock. A completed timer stays stopped.
func (t *Timer) Resume() {
	if t.state.Completed() {
		return
	}
	t.state.Running = true
}

// Reset returns to the first inhale of the first cycle, stopped.
func (t *Timer) Reset() {
	t.state = State{Phase: PhaseInhale}
	t.total = 0
}

// Tick advances the clock by one second. It is a no-op unless running.
func (t *Timer) Tick() State {
	if !t.state.Running || t.state.Completed() {
		return t.state
	}

	t.state.Elapsed++
	t.total++

	if t.state.Elapsed >= t.exercise.PhaseSeconds(t.state.Phase) {
		t.advance()
	}
	t.state.Progress = t.progress()

	return t.state
}

func (t *Timer) advance() {
	t.state.Elapsed = 0

	switch t.state.Phase {
	case PhaseInhale:
		if t.exercise.Hold > 0 {
			t.state.Phase = PhaseHold
		} else {
			t.state.Phase = PhaseExhale
		}
	case PhaseHold:
		t.state.Phase = PhaseExhale
	case PhaseExhale:
		if t.state.Cycle+1 < t.exercise.Cycles {
			t.state.Cycle++
			t.state.Phase = PhaseInhale
			return
		}
		t.state.Phase = PhaseCompleted
		t.state.Running = false
	}
}

func (t *Timer) progress() float64 {
	total := t.exercise.TotalSeconds()
	if total <= 0 {
		return 0
	}
	p := float64(t.total) / float64(total) * 100
	return min(max(p, 0), 100)
}
