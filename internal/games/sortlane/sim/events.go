package sim

import "github.com/vovakirdan/sortlane/internal/core"

// EventKind identifies a simulation event.
type EventKind int

const (
	EventItemSpawned EventKind = iota
	EventCorrectCollection
	EventMisclassifiedRetry
	EventIncorrectCollectionForced
	EventItemEscaped
	EventLevelComplete
	EventLevelFailed
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventItemSpawned:
		return "ItemSpawned"
	case EventCorrectCollection:
		return "CorrectCollection"
	case EventMisclassifiedRetry:
		return "MisclassifiedRetry"
	case EventIncorrectCollectionForced:
		return "IncorrectCollectionForced"
	case EventItemEscaped:
		return "ItemEscaped"
	case EventLevelComplete:
		return "LevelComplete"
	case EventLevelFailed:
		return "LevelFailed"
	default:
		return "Unknown"
	}
}

// Event is a single simulation occurrence. Which fields are meaningful
// depends on Kind:
//
//   - ItemSpawned: Item, Category, LaneID, Position
//   - CorrectCollection: Item, Classifier, Category, LaneID, Position, Points
//   - MisclassifiedRetry: Item, Classifier, Category, LaneID, Position, RetriesLeft
//   - IncorrectCollectionForced: Item, Classifier, Category, LaneID, Position
//   - ItemEscaped: Item, Category, LaneID, Position
//   - LevelComplete, LevelFailed: Stats
type Event struct {
	Kind        EventKind
	Tick        uint64
	Item        int
	Classifier  int
	Category    Category
	LaneID      int
	Position    core.Vec2
	Points      int
	RetriesLeft int
	Stats       Stats
}

// Terminal reports whether the event ends the level.
func (e Event) Terminal() bool {
	return e.Kind == EventLevelComplete || e.Kind == EventLevelFailed
}

// Sink receives simulation events in emission order.
type Sink interface {
	OnEvent(Event)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(Event)

// OnEvent calls f(e).
func (f SinkFunc) OnEvent(e Event) {
	f(e)
}

// TickResult contains what happened during one Update.
type TickResult struct {
	Tick   uint64
	Events []Event
	Status Status
}

// Count returns how many events of the given kind occurred in the tick.
func (r TickResult) Count(kind EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
