package system

import (
	"time"

	coresys "github.com/IlyaYakubovichh/Gojo/internal/core/system"
)

// QueueDrainer is satisfied by *event.Dispatcher.
type QueueDrainer interface {
	DispatchEventsInQueue()
}

// EventDrainSystem delivers events queued since the previous tick. Events
// queued by listeners during the drain wait for the next tick.
// Phase PreUpdate.
type EventDrainSystem struct {
	events QueueDrainer
}

func NewEventDrainSystem(events QueueDrainer) *EventDrainSystem {
	return &EventDrainSystem{events: events}
}

func (s *EventDrainSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDrainSystem) Update(_ time.Duration) {
	s.events.DispatchEventsInQueue()
}
