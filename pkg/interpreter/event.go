package interpreter

import "fmt"

// EventKind identifies an observable robot state transition.
type EventKind string

const (
	// EventStartPosition is emitted by start with the new position.
	EventStartPosition EventKind = "start_position"

	// EventDirectionChanged is emitted by turn with the new orientation.
	EventDirectionChanged EventKind = "direction_changed"

	// EventStepsTaken is emitted by a successful step with its count.
	EventStepsTaken EventKind = "steps_taken"

	// EventEndPosition is emitted by stop with the current position.
	EventEndPosition EventKind = "end_position"
)

// Event is one entry of the event stream. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind        EventKind
	East        int64
	North       int64
	Orientation Orientation
	Count       int64
}

// EventHandler receives events as they are emitted.
type EventHandler func(Event)

func startPosition(p Position) Event {
	return Event{Kind: EventStartPosition, East: p.East, North: p.North}
}

func directionChanged(o Orientation) Event {
	return Event{Kind: EventDirectionChanged, Orientation: o}
}

func stepsTaken(n int64) Event {
	return Event{Kind: EventStepsTaken, Count: n}
}

func endPosition(p Position) Event {
	return Event{Kind: EventEndPosition, East: p.East, North: p.North}
}

func (e Event) String() string {
	switch e.Kind {
	case EventStartPosition, EventEndPosition:
		return fmt.Sprintf("%s{%d,%d}", e.Kind, e.East, e.North)
	case EventDirectionChanged:
		return fmt.Sprintf("%s{%s}", e.Kind, e.Orientation)
	case EventStepsTaken:
		return fmt.Sprintf("%s{%d}", e.Kind, e.Count)
	default:
		return string(e.Kind)
	}
}
