// Package store provides SQLite-backed durable storage for the
// interaction ledger.
//
// The store holds a single append-only table of interactions:
//   - idx is assigned at append time, 0-based and contiguous
//   - rows are never updated or deleted
//   - record_hash and chain_hash make historical tampering detectable
//
// Append runs in a single transaction covering index assignment, hashing,
// and insert. Combined with the single-connection pool, no two appends can
// be assigned the same index, and a failed append leaves the sequence
// unchanged.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// Hashes are computed via internal/ledger using canonical JSON and
// SHA-256 with domain separation.
package store
