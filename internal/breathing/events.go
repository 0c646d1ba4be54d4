package breathing

import "time"

type EventType string

const (
	EventStarted     EventType = "started"
	EventTick        EventType = "tick"
	EventPhaseChange EventType = "phase_change"
	EventPaused      EventType = "paused"
	EventResumed     EventType = "resumed"
	EventReset       EventType = "reset"
	EventCompleted   EventType = "completed"
)

// Event is a Runner update for observers.
type Event struct {
	Type     EventType `json:"type"`
	Exercise string    `json:"exercise"`
	State    State     `json:"state"`
	At       time.Time `json:"at"`
}
