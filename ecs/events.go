package ecs

import "github.com/milk9111/rollcube/common"

// EventKind identifies world event types.
type EventKind string

const (
	EventObjectiveActivated EventKind = "objective_activated"
	EventAvatarFellOut      EventKind = "avatar_fell_out"
	EventAvatarLanded       EventKind = "avatar_landed"
)

// Event is raised by collaborators during a tick and drained in order by the
// session at the end of the same tick.
type Event struct {
	Kind   EventKind
	Entity Entity
	Cell   common.GridPosition
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events in push order and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
