package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/garrettladley/moodly/internal/breathing"
)

const eventBuffer = 16

// EventMsg carries a runner update into the program.
type EventMsg breathing.Event

// runner closed its observer channels
type eventsClosedMsg struct{}

func waitForEvent(events <-chan breathing.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return EventMsg(ev)
	}
}
