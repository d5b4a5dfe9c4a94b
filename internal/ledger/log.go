package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/roehl/interlog/internal/identity"
)

// Sink receives each interaction after it has been appended.
//
// Sinks are side-channel telemetry: a sink cannot fail an append, and the
// log does not wait for delivery guarantees. The stored sequence remains
// the source of truth.
type Sink interface {
	Appended(rec Interaction)
}

// Log is an in-memory append-only interaction sequence.
//
// Record is the only mutating operation. The mutex makes index assignment
// and append atomic together, so no two records can share an index even
// with concurrent writers. Reads may run concurrently with each other.
type Log struct {
	mu    sync.RWMutex
	recs  []Interaction
	clock Clock
	sink  Sink
}

// Option configures a Log.
type Option func(*Log)

// WithClock overrides the timestamp source. Used by tests.
func WithClock(c Clock) Option {
	return func(l *Log) { l.clock = c }
}

// WithSink attaches an observer notified after each successful append.
func WithSink(s Sink) Option {
	return func(l *Log) { l.sink = s }
}

// NewLog creates an empty log using the wall clock and no sink.
func NewLog(opts ...Option) *Log {
	l := &Log{clock: WallClock{}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record appends an interaction for the authenticated caller.
//
// The actor comes from the principal bound to ctx by the transport; the
// timestamp comes from the log's clock. Returns the new record, whose
// Index equals the sequence length immediately before the append.
//
// The sink, if any, is invoked after the append is complete; the append
// result never depends on sink behavior.
func (l *Log) Record(ctx context.Context, action string) (Interaction, error) {
	p, ok := identity.FromContext(ctx)
	if !ok {
		return Interaction{}, NewNoPrincipalError()
	}

	l.mu.Lock()
	index := int64(len(l.recs))
	timestamp := l.clock.Now()

	recordHash, err := RecordHash(index, p.Actor, timestamp, action)
	if err != nil {
		l.mu.Unlock()
		return Interaction{}, fmt.Errorf("record interaction: %w", err)
	}

	prev := GenesisChainHash
	if index > 0 {
		prev = l.recs[index-1].ChainHash
	}

	rec := Interaction{
		Index:      index,
		Actor:      p.Actor,
		Timestamp:  timestamp,
		Action:     action,
		RecordHash: recordHash,
		ChainHash:  ChainHash(prev, recordHash),
	}
	l.recs = append(l.recs, rec)
	sink := l.sink
	l.mu.Unlock()

	if sink != nil {
		sink.Appended(rec)
	}

	return rec, nil
}

// Count returns the current sequence length. Pure read, no side effects.
func (l *Log) Count(ctx context.Context) (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return int64(len(l.recs)), nil
}

// Get returns the interaction at the given index by value.
//
// The bound is checked before access: any index outside [0, count) fails
// with an INDEX_OUT_OF_RANGE error, never a zeroed record.
func (l *Log) Get(ctx context.Context, index int64) (Interaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := int64(len(l.recs))
	if index < 0 || index >= count {
		return Interaction{}, NewIndexOutOfRangeError(index, count)
	}
	return l.recs[index], nil
}

// ListByActor returns interactions recorded by the given actor, in index
// order. A limit of 0 or less means no limit.
func (l *Log) ListByActor(ctx context.Context, actor string, limit int) ([]Interaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	recs := []Interaction{}
	for _, rec := range l.recs {
		if rec.Actor != actor {
			continue
		}
		recs = append(recs, rec)
		if limit > 0 && len(recs) == limit {
			break
		}
	}
	return recs, nil
}
