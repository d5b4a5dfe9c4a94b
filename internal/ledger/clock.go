package ledger

import "time"

// Clock provides the timestamp stamped onto interactions at record time.
//
// Timestamps are epoch seconds assigned by the system, never supplied by
// callers. Tests substitute a fixed clock for deterministic records.
type Clock interface {
	// Now returns the current time as seconds since the Unix epoch.
	Now() int64
}

// WallClock reads the system wall clock.
type WallClock struct{}

// Now returns the current Unix time in seconds.
func (WallClock) Now() int64 {
	return time.Now().Unix()
}
