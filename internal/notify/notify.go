// Package notify emits fire-and-forget notifications of ledger appends.
//
// Each successful append produces one Event carrying the actor, timestamp,
// and action, intended for external indexing by actor. Delivery is
// best-effort: a lost or failed notification never affects the stored
// sequence, which remains the source of truth.
package notify

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/roehl/interlog/internal/ledger"
)

// Event is the structured notification emitted for each append.
//
// The ID is a UUIDv7: time-sortable, so external indexers can order events
// by emission without trusting delivery order, and unique, so at-least-once
// delivery can be deduplicated.
type Event struct {
	ID        string `json:"id"`
	Actor     string `json:"actor"`
	Timestamp int64  `json:"timestamp"`
	Action    string `json:"action"`
}

// NewEvent builds the notification for an appended interaction.
//
// Panics if UUID generation fails (should never happen in practice).
func NewEvent(rec ledger.Interaction) Event {
	return Event{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Actor:     rec.Actor,
		Timestamp: rec.Timestamp,
		Action:    rec.Action,
	}
}

// Sink delivers events to one destination.
//
// Emit errors are reported to the caller for logging but never propagate
// to the append that produced the event.
type Sink interface {
	Emit(ev Event) error
}

// Fanout delivers each event to every sink, continuing past per-sink
// failures. The returned error joins all failures.
type Fanout struct {
	mu    sync.Mutex
	sinks []Sink
}

// NewFanout creates a fanout over the given sinks.
func NewFanout(sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks}
}

// Add appends a sink to the fanout.
func (f *Fanout) Add(s Sink) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sinks = append(f.sinks, s)
}

// Len returns the number of attached sinks.
func (f *Fanout) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sinks)
}

// Emit delivers the event to all sinks. One sink's failure does not stop
// delivery to the others.
func (f *Fanout) Emit(ev Event) error {
	f.mu.Lock()
	sinks := make([]Sink, len(f.sinks))
	copy(sinks, f.sinks)
	f.mu.Unlock()

	var errs []error
	for _, s := range sinks {
		if err := s.Emit(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
