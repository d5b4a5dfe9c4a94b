// Package ledger defines the interaction ledger's core data model.
//
// An Interaction is one recorded (actor, timestamp, action) triple. The
// ledger is an append-only ordered sequence of interactions: insertion
// order equals chronological order equals index order, indexes are stable
// forever, and no update or delete operation exists.
//
// The package provides:
//   - Log: a mutex-guarded in-memory append-only sequence
//   - Clock: the timestamp source stamped onto records
//   - Sink: a fire-and-forget observer of appends
//   - canonical JSON and domain-separated SHA-256 hashing for
//     content-addressed record identity and the tamper-evidence chain
//   - coded errors (INDEX_OUT_OF_RANGE, NO_PRINCIPAL, CHAIN_DIVERGENCE)
//
// The durable SQLite-backed sequence lives in internal/store and shares
// this package's types, hashing, and error codes.
package ledger
