package game

import (
	"sync"
	"time"
)

// EventKind is the coarse class of an emitted event.
type EventKind string

const (
	EventKindInfo     EventKind = "INFO"
	EventKindError    EventKind = "ERROR"
	EventKindSnapshot EventKind = "STATE_SNAPSHOT"
)

// EventType indicates what happened.
type EventType string

const (
	EventGameStarted   EventType = "GAME_STARTED"
	EventCardPlayed    EventType = "CARD_PLAYED"
	EventCardBought    EventType = "CARD_BOUGHT"
	EventPhaseChanged  EventType = "PHASE_CHANGED"
	EventTurnEnded     EventType = "TURN_ENDED"
	EventCardsDrawn    EventType = "CARDS_DRAWN"
	EventHPChanged     EventType = "HP_CHANGED"
	EventGameOver      EventType = "GAME_OVER"
	EventRuleViolation EventType = "RULE_VIOLATION"
	EventSnapshot      EventType = "SNAPSHOT"

	// Verbose-only sub-event carrying a single stat delta.
	EventStatDelta EventType = "STAT_DELTA"
)

// Event is one structured record emitted by the engine after a mutation.
// The engine never reads events back; sinks are write-only collaborators.
type Event struct {
	ID       string    `json:"id"`
	Kind     EventKind `json:"kind"`
	Type     EventType `json:"type"`
	Actor    string    `json:"actor,omitempty"`
	Message  string    `json:"message"`
	Snapshot *Snapshot `json:"snapshot,omitempty"`
	At       time.Time `json:"at"`
}

// Sink receives engine events. Implementations must not call back into the
// engine.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Emit calls f(ev).
func (f SinkFunc) Emit(ev Event) { f(ev) }

// NopSink discards every event.
type NopSink struct{}

// Emit discards the event.
func (NopSink) Emit(Event) {}

// EventBuffer is a bounded in-memory sink. When the buffer is full the
// oldest events are dropped. It is safe for concurrent use, so a gateway
// can read the tail while the match worker appends.
type EventBuffer struct {
	mu     sync.Mutex
	events []Event
	limit  int
}

// NewEventBuffer creates a buffer holding up to limit events. A limit of
// zero or less means unbounded.
func NewEventBuffer(limit int) *EventBuffer {
	return &EventBuffer{limit: limit}
}

// Emit appends the event, evicting the oldest entries beyond the limit.
func (b *EventBuffer) Emit(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events = append(b.events, ev)
	if b.limit > 0 && len(b.events) > b.limit {
		b.events = b.events[len(b.events)-b.limit:]
	}
}

// Tail returns up to n most recent events, oldest first. n <= 0 returns
// everything retained.
func (b *EventBuffer) Tail(n int) []Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := 0
	if n > 0 && len(b.events) > n {
		start = len(b.events) - n
	}
	return append([]Event(nil), b.events[start:]...)
}

// Len returns the number of retained events.
func (b *EventBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}
