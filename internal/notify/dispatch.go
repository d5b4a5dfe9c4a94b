package notify

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/roehl/interlog/internal/ledger"
)

// Dispatcher delivers events asynchronously through a bounded FIFO.
//
// Publish never blocks the append path: when the buffer is full the event
// is dropped and counted. Loss is tolerated because the stored sequence is
// the source of truth; the notification surface carries no correctness
// obligation.
//
// A single consumer goroutine drains the buffer, so sinks see events in
// publish order.
type Dispatcher struct {
	sink    Sink
	events  chan Event
	dropped atomic.Int64

	closeOnce sync.Once
	done      chan struct{}
}

// NewDispatcher starts a dispatcher delivering to sink with the given
// buffer capacity. A capacity of 0 or less gets a minimal buffer of 1.
func NewDispatcher(sink Sink, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 1
	}
	d := &Dispatcher{
		sink:   sink,
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

// run is the single consumer loop.
func (d *Dispatcher) run() {
	defer close(d.done)
	for ev := range d.events {
		if err := d.sink.Emit(ev); err != nil {
			slog.Error("notification emit failed", "event_id", ev.ID, "error", err)
		}
	}
}

// Publish enqueues the notification for an appended interaction.
// Non-blocking: drops the event when the buffer is full.
// Must not be called after Close.
func (d *Dispatcher) Publish(rec ledger.Interaction) {
	ev := NewEvent(rec)
	select {
	case d.events <- ev:
	default:
		d.dropped.Add(1)
		slog.Warn("notification dropped: buffer full",
			"event_id", ev.ID,
			"actor", ev.Actor,
			"dropped_total", d.dropped.Load(),
		)
	}
}

// Appended implements ledger.Sink, so a Dispatcher can be attached
// directly to an in-memory Log.
func (d *Dispatcher) Appended(rec ledger.Interaction) {
	d.Publish(rec)
}

// Dropped returns the number of events dropped due to a full buffer.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Close stops accepting events and waits for buffered events to drain.
// Safe to call multiple times.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.events)
	})
	<-d.done
}
