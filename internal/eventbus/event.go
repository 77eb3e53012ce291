package eventbus

import (
	"time"

	"github.com/grachmannico95/incident-replay/internal/domain"
)

type EventType string

const (
	EventTypeTick         EventType = "tick"
	EventTypeStateChanged EventType = "state_changed"
)

type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
	Retries   int         `json:"retries"`
}

// TickEvent is published after the ticker moved the clock.
type TickEvent struct {
	Clock domain.ClockState `json:"clock"`
}

// StateChangedEvent is published after a user action changed clock, filter
// or settings state.
type StateChangedEvent struct {
	Action string            `json:"action"`
	Clock  domain.ClockState `json:"clock"`
}
