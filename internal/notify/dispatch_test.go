package notify

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roehl/interlog/internal/ledger"
)

// lockedRecorder is a thread-safe capture sink for dispatcher tests.
type lockedRecorder struct {
	mu     sync.Mutex
	events []Event
	fail   error
}

func (r *lockedRecorder) Emit(ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.fail
}

func (r *lockedRecorder) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// blockingSink holds the consumer goroutine inside Emit until released.
type blockingSink struct {
	started chan struct{}
	release chan struct{}
	inner   *lockedRecorder
}

func newBlockingSink() *blockingSink {
	return &blockingSink{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		inner:   &lockedRecorder{},
	}
}

func (s *blockingSink) Emit(ev Event) error {
	s.started <- struct{}{}
	<-s.release
	return s.inner.Emit(ev)
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	sink := &lockedRecorder{}
	d := NewDispatcher(sink, 8)

	actions := []string{"One", "Two", "Three"}
	for _, action := range actions {
		d.Publish(ledger.Interaction{Actor: "alice", Action: action})
	}
	d.Close()

	events := sink.all()
	require.Len(t, events, 3)
	for i, action := range actions {
		assert.Equal(t, action, events[i].Action)
	}
	assert.Equal(t, int64(0), d.Dropped())
}

func TestDispatcher_DropsOnFullBuffer(t *testing.T) {
	sink := newBlockingSink()
	d := NewDispatcher(sink, 1)

	// First event is picked up by the consumer and held inside Emit.
	d.Publish(ledger.Interaction{Action: "Held"})
	<-sink.started

	// Buffer (capacity 1) takes the second; the third has nowhere to go.
	d.Publish(ledger.Interaction{Action: "Buffered"})
	d.Publish(ledger.Interaction{Action: "Dropped"})

	assert.Equal(t, int64(1), d.Dropped())

	close(sink.release)
	d.Close()

	events := sink.inner.all()
	require.Len(t, events, 2)
	assert.Equal(t, "Held", events[0].Action)
	assert.Equal(t, "Buffered", events[1].Action)
}

func TestDispatcher_SinkErrorDoesNotStopDelivery(t *testing.T) {
	sink := &lockedRecorder{fail: assert.AnError}
	d := NewDispatcher(sink, 8)

	d.Publish(ledger.Interaction{Action: "One"})
	d.Publish(ledger.Interaction{Action: "Two"})
	d.Close()

	assert.Len(t, sink.all(), 2)
}

func TestDispatcher_CloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(&lockedRecorder{}, 1)
	d.Close()
	d.Close()
}
