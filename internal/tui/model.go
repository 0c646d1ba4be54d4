// Package tui is the terminal breathing coach.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/moodly/internal/breathing"
	"github.com/garrettladley/moodly/internal/tui/components/footer"
	"github.com/garrettladley/moodly/internal/tui/components/gauge"
	"github.com/garrettladley/moodly/internal/tui/theme"
	"github.com/garrettladley/moodly/internal/xslog"
)

var errNoExercises = errors.New("no breathing exercises available")

var _ tea.Model = (*Model)(nil)

type Model struct {
	ready          bool
	viewportWidth  int
	viewportHeight int
	theme          theme.Theme
	deps           Deps
	events         <-chan breathing.Event
	index          int
	state          breathing.State
	err            error
}

func New(deps Deps) *Model {
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	m := &Model{
		theme:  theme.New(),
		deps:   deps,
		events: deps.Runner.Subscribe(eventBuffer),
	}
	for i, ex := range deps.Exercises {
		if ex.Key == deps.Initial {
			m.index = i
			break
		}
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	m.start()
	return waitForEvent(m.events)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height
		m.ready = true

	case tea.KeyPressMsg:
		return m, m.handleKey(msg.String())

	case EventMsg:
		m.state = msg.State
		if msg.Type == breathing.EventCompleted {
			m.deps.Logger.Info("breathing exercise completed", xslog.Exercise(msg.Exercise))
		}
		return m, waitForEvent(m.events)

	case eventsClosedMsg:
		return m, nil
	}

	return m, nil
}

// handleKey applies a key press. Every branch that leaves the running state
// goes through the runner so its tick task is stopped.
func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "esc", "ctrl+c":
		m.deps.Runner.Close()
		return tea.Quit
	case "space", " ":
		m.togglePause()
	case "r":
		m.deps.Runner.Reset()
	case "n", "tab":
		if len(m.deps.Exercises) > 0 {
			m.index = (m.index + 1) % len(m.deps.Exercises)
			m.start()
		}
	}
	m.state = m.deps.Runner.State()
	return nil
}

func (m *Model) togglePause() {
	st := m.deps.Runner.State()
	switch {
	case st.Running:
		m.deps.Runner.Pause()
	case st.Completed():
		m.start()
	default:
		m.deps.Runner.Resume(m.deps.Ctx)
	}
}

func (m *Model) start() {
	if len(m.deps.Exercises) == 0 {
		m.err = errNoExercises
		return
	}

	ex := m.current()
	if err := m.deps.Runner.Start(m.deps.Ctx, ex); err != nil {
		m.err = err
		m.deps.Logger.Error("failed to start breathing exercise", xslog.Exercise(ex.Key), xslog.Error(err))
		return
	}
	m.err = nil
	m.state = m.deps.Runner.State()
	m.deps.Logger.Info("breathing exercise started", xslog.Exercise(ex.Key))
}

func (m *Model) current() breathing.Exercise {
	if len(m.deps.Exercises) == 0 {
		return breathing.Exercise{}
	}
	return m.deps.Exercises[m.index]
}

func (m *Model) View() tea.View {
	view := tea.NewView("")
	view.AltScreen = true
	view.BackgroundColor = m.theme.Background()

	if !m.ready {
		return view
	}

	body := lipgloss.Place(
		m.viewportWidth,
		max(m.viewportHeight-1, 0),
		lipgloss.Center,
		lipgloss.Center,
		m.body(),
	)
	hints := footer.New(m.viewportWidth, "space pause", "r reset", "n next", "q quit")

	view.SetContent(lipgloss.JoinVertical(lipgloss.Left, body, hints.Render()))
	return view
}

func (m *Model) body() string {
	if m.err != nil {
		return lipgloss.NewStyle().Foreground(theme.ColorError).Render(m.err.Error())
	}

	var (
		ex    = m.current()
		st    = m.state
		title = m.theme.Title().Render(ex.Name) + m.theme.Muted().Render("  "+ex.Pattern())
		opts  []gauge.Option
	)
	if !st.Running && !st.Completed() {
		opts = append(opts, gauge.WithTextColor(theme.ColorDim))
	}
	ring := gauge.New(
		st.Progress/100,
		centerText(ex, st),
		strings.ToUpper(st.Phase.String()),
		m.theme.Phase(st),
		opts...,
	)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		ring.Render(),
		"",
		m.theme.Base().Render(prompt(st)),
		m.theme.Muted().Render(cycleText(ex, st)),
	)
}

// remaining is the number of whole seconds left in the current phase.
func remaining(ex breathing.Exercise, st breathing.State) int {
	return max(ex.PhaseSeconds(st.Phase)-st.Elapsed, 0)
}

func centerText(ex breathing.Exercise, st breathing.State) string {
	if st.Completed() {
		return "done"
	}
	return fmt.Sprintf("%ds", remaining(ex, st))
}

func prompt(st breathing.State) string {
	switch {
	case st.Completed():
		return "Well done. Press space to go again."
	case !st.Running && st.Progress == 0 && st.Elapsed == 0 && st.Cycle == 0:
		return "Press space to begin."
	case !st.Running:
		return "Paused"
	}

	switch st.Phase {
	case breathing.PhaseHold:
		return "Hold gently"
	case breathing.PhaseExhale:
		return "Breathe out slowly"
	default:
		return "Breathe in through your nose"
	}
}

func cycleText(ex breathing.Exercise, st breathing.State) string {
	return fmt.Sprintf("cycle %d of %d", min(st.Cycle+1, ex.Cycles), ex.Cycles)
}
