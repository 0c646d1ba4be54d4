package tui

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/garrettladley/moodly/internal/breathing"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	slow  = breathing.Exercise{Key: "slow", Name: "Slow", Inhale: 4, Hold: 7, Exhale: 8, Cycles: 4}
	box   = breathing.Exercise{Key: "box", Name: "Box", Inhale: 4, Hold: 4, Exhale: 4, Cycles: 6}
	quick = breathing.Exercise{Key: "quick", Name: "Quick", Inhale: 1, Exhale: 1, Cycles: 1}
)

func newModel(t *testing.T, interval time.Duration, initial string, exercises ...breathing.Exercise) *Model {
	t.Helper()
	runner := breathing.NewRunner(breathing.WithTickInterval(interval))
	t.Cleanup(runner.Close)
	return New(Deps{
		Ctx:       t.Context(),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Runner:    runner,
		Exercises: exercises,
		Initial:   initial,
	})
}

func TestInitStartsInitialExercise(t *testing.T) {
	t.Parallel()
	m := newModel(t, time.Hour, "box", slow, box)

	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init() returned no command")
	}
	if got := m.deps.Runner.Exercise().Key; got != "box" {
		t.Errorf("running exercise = %q, want box", got)
	}
	if !m.state.Running || !m.deps.Runner.Scheduled() {
		t.Errorf("state = %+v, scheduled = %v, want running", m.state, m.deps.Runner.Scheduled())
	}
}

func TestUnknownInitialStartsFirst(t *testing.T) {
	t.Parallel()
	m := newModel(t, time.Hour, "nope", slow, box)
	m.Init()

	if got := m.deps.Runner.Exercise().Key; got != "slow" {
		t.Errorf("running exercise = %q, want slow", got)
	}
}

func TestSpaceTogglesPause(t *testing.T) {
	t.Parallel()
	m := newModel(t, time.Hour, "", slow)
	m.Init()

	m.handleKey("space")
	if m.state.Running || m.deps.Runner.Scheduled() {
		t.Fatalf("after pause state = %+v, scheduled = %v", m.state, m.deps.Runner.Scheduled())
	}

	m.handleKey("space")
	if !m.state.Running || !m.deps.Runner.Scheduled() {
		t.Fatalf("after resume state = %+v, scheduled = %v", m.state, m.deps.Runner.Scheduled())
	}
}

func TestResetStopsTask(t *testing.T) {
	t.Parallel()
	m := newModel(t, time.Hour, "", slow)
	m.Init()

	m.handleKey("r")
	if m.state.Running || m.deps.Runner.Scheduled() {
		t.Errorf("after reset state = %+v, scheduled = %v", m.state, m.deps.Runner.Scheduled())
	}
	if m.state.Phase != breathing.PhaseInhale || m.state.Progress != 0 {
		t.Errorf("after reset state = %+v, want first inhale", m.state)
	}
	if got := prompt(m.state); got != "Press space to begin." {
		t.Errorf("prompt after reset = %q", got)
	}
}

func TestNextCyclesExercises(t *testing.T) {
	t.Parallel()
	m := newModel(t, time.Hour, "", slow, box)
	m.Init()

	m.handleKey("n")
	if got := m.deps.Runner.Exercise().Key; got != "box" {
		t.Errorf("after n exercise = %q, want box", got)
	}
	m.handleKey("n")
	if got := m.deps.Runner.Exercise().Key; got != "slow" {
		t.Errorf("after second n exercise = %q, want slow", got)
	}
	if !m.state.Running {
		t.Error("switching exercise should start it")
	}
}

func TestQuitClosesRunner(t *testing.T) {
	t.Parallel()
	m := newModel(t, time.Hour, "", slow)
	m.Init()

	if cmd := m.handleKey("q"); cmd == nil {
		t.Fatal("q returned no command")
	}
	if m.deps.Runner.Scheduled() {
		t.Error("runner still scheduled after quit")
	}
	if err := m.deps.Runner.Start(t.Context(), slow); !errors.Is(err, breathing.ErrRunnerClosed) {
		t.Errorf("Start() after quit error = %v, want ErrRunnerClosed", err)
	}

	// drain whatever was buffered, then the closed channel ends the loop
	for {
		msg := waitForEvent(m.events)()
		if _, ok := msg.(eventsClosedMsg); ok {
			break
		}
	}
}

func waitForType(t *testing.T, events <-chan breathing.Event, typ breathing.EventType) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Type == typ {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s event", typ)
		}
	}
}

func TestSpaceRestartsCompletedExercise(t *testing.T) {
	t.Parallel()
	m := newModel(t, time.Millisecond, "", quick)
	m.Init()

	waitForType(t, m.events, breathing.EventCompleted)
	if m.deps.Runner.Scheduled() {
		t.Error("runner still scheduled after completion")
	}

	m.handleKey("space")
	waitForType(t, m.events, breathing.EventStarted)
}

func TestUpdateAppliesEvents(t *testing.T) {
	t.Parallel()
	m := newModel(t, time.Hour, "", slow)

	st := breathing.State{Phase: breathing.PhaseHold, Elapsed: 2, Cycle: 1, Progress: 40, Running: true}
	_, cmd := m.Update(EventMsg{Type: breathing.EventTick, Exercise: "slow", State: st})
	if cmd == nil {
		t.Error("Update(EventMsg) should keep listening")
	}
	if m.state != st {
		t.Errorf("state = %+v, want %+v", m.state, st)
	}

	if _, cmd := m.Update(eventsClosedMsg{}); cmd != nil {
		t.Error("Update(eventsClosedMsg) should stop listening")
	}
}

func TestNoExercises(t *testing.T) {
	t.Parallel()
	m := newModel(t, time.Hour, "")
	m.Init()

	if !errors.Is(m.err, errNoExercises) {
		t.Fatalf("err = %v, want errNoExercises", m.err)
	}
	if !strings.Contains(m.body(), errNoExercises.Error()) {
		t.Error("body does not show the error")
	}
	m.handleKey("n")
	m.handleKey("space")
}

func TestBodyShowsExercise(t *testing.T) {
	t.Parallel()
	m := newModel(t, time.Hour, "", slow)
	m.Init()

	body := m.body()
	for _, want := range []string{"Slow", "4-7-8", "cycle 1 of 4", "4s", "INHALE"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestTextHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		st        breathing.State
		remaining int
		center    string
		prompt    string
		cycle     string
	}{
		{
			name:      "fresh",
			st:        breathing.State{Phase: breathing.PhaseInhale},
			remaining: 4,
			center:    "4s",
			prompt:    "Press space to begin.",
			cycle:     "cycle 1 of 4",
		},
		{
			name:      "holding",
			st:        breathing.State{Phase: breathing.PhaseHold, Elapsed: 3, Cycle: 2, Running: true, Progress: 50},
			remaining: 4,
			center:    "4s",
			prompt:    "Hold gently",
			cycle:     "cycle 3 of 4",
		},
		{
			name:      "paused exhale",
			st:        breathing.State{Phase: breathing.PhaseExhale, Elapsed: 1, Progress: 20},
			remaining: 7,
			center:    "7s",
			prompt:    "Paused",
			cycle:     "cycle 1 of 4",
		},
		{
			name:      "completed",
			st:        breathing.State{Phase: breathing.PhaseCompleted, Cycle: 3, Progress: 100},
			remaining: 0,
			center:    "done",
			prompt:    "Well done. Press space to go again.",
			cycle:     "cycle 4 of 4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := remaining(slow, tt.st); got != tt.remaining {
				t.Errorf("remaining() = %d, want %d", got, tt.remaining)
			}
			if got := centerText(slow, tt.st); got != tt.center {
				t.Errorf("centerText() = %q, want %q", got, tt.center)
			}
			if got := prompt(tt.st); got != tt.prompt {
				t.Errorf("prompt() = %q, want %q", got, tt.prompt)
			}
			if got := cycleText(slow, tt.st); got != tt.cycle {
				t.Errorf("cycleText() = %q, want %q", got, tt.cycle)
			}
		})
	}
}
