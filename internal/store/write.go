package store

import (
	"context"
	"fmt"

	"github.com/roehl/interlog/internal/identity"
	"github.com/roehl/interlog/internal/ledger"
)

// Append records an interaction for the given actor and returns the stored
// record. The assigned index equals the sequence length immediately before
// the append.
//
// Index assignment, hashing, and insert happen in one transaction: if any
// step fails the transaction rolls back and the sequence does not grow.
// There is no partial write and no retry; a failed append surfaces the
// underlying error to the caller.
func (s *Store) Append(ctx context.Context, actor, action string) (ledger.Interaction, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ledger.Interaction{}, fmt.Errorf("append interaction: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var index int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM interactions`).Scan(&index); err != nil {
		return ledger.Interaction{}, fmt.Errorf("append interaction: count: %w", err)
	}

	prev := ledger.GenesisChainHash
	if index > 0 {
		err := tx.QueryRowContext(ctx, `
			SELECT chain_hash FROM interactions WHERE idx = ?
		`, index-1).Scan(&prev)
		if err != nil {
			return ledger.Interaction{}, fmt.Errorf("append interaction: previous chain hash: %w", err)
		}
	}

	timestamp := s.clock.Now()

	recordHash, err := ledger.RecordHash(index, actor, timestamp, action)
	if err != nil {
		return ledger.Interaction{}, fmt.Errorf("append interaction: %w", err)
	}

	rec := ledger.Interaction{
		Index:      index,
		Actor:      actor,
		Timestamp:  timestamp,
		Action:     action,
		RecordHash: recordHash,
		ChainHash:  ledger.ChainHash(prev, recordHash),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO interactions
		(idx, actor, ts, action, record_hash, chain_hash)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		rec.Index,
		rec.Actor,
		rec.Timestamp,
		rec.Action,
		rec.RecordHash,
		rec.ChainHash,
	)
	if err != nil {
		return ledger.Interaction{}, fmt.Errorf("append interaction: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return ledger.Interaction{}, fmt.Errorf("append interaction: commit: %w", err)
	}

	return rec, nil
}

// Record appends an interaction for the principal bound to ctx.
// Fails with a NO_PRINCIPAL error when no transport authenticated the
// caller; the actor is never taken from a payload field.
func (s *Store) Record(ctx context.Context, action string) (ledger.Interaction, error) {
	p, ok := identity.FromContext(ctx)
	if !ok {
		return ledger.Interaction{}, ledger.NewNoPrincipalError()
	}
	return s.Append(ctx, p.Actor, action)
}
