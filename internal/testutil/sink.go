package testutil

import (
	"sync"

	"github.com/roehl/interlog/internal/notify"
)

// CaptureSink records emitted notification events for assertions.
//
// An optional injected error lets tests exercise sink-failure paths
// without a real failing destination.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type CaptureSink struct {
	mu     sync.Mutex
	events []notify.Event
	fail   error
}

// NewCaptureSink creates an empty capture sink.
func NewCaptureSink() *CaptureSink {
	return &CaptureSink{}
}

// Emit records the event, then returns the injected error if one is set.
func (s *CaptureSink) Emit(ev notify.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.fail
}

// Events returns a copy of all captured events in emission order.
func (s *CaptureSink) Events() []notify.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notify.Event, len(s.events))
	copy(out, s.events)
	return out
}

// FailWith makes every subsequent Emit return err.
func (s *CaptureSink) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}
