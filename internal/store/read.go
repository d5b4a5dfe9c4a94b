package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roehl/interlog/internal/ledger"
)

// Count returns the current sequence length. Pure read, no side effects.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM interactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count interactions: %w", err)
	}
	return count, nil
}

// Get returns the interaction at the given index.
//
// The bound is checked before access: any index outside [0, count) fails
// with an INDEX_OUT_OF_RANGE error, never a zeroed record.
func (s *Store) Get(ctx context.Context, index int64) (ledger.Interaction, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return ledger.Interaction{}, err
	}
	if index < 0 || index >= count {
		return ledger.Interaction{}, ledger.NewIndexOutOfRangeError(index, count)
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT idx, actor, ts, action, record_hash, chain_hash
		FROM interactions
		WHERE idx = ?
	`, index)

	rec, err := scanInteractionRow(row)
	if err != nil {
		return ledger.Interaction{}, fmt.Errorf("get interaction %d: %w", index, err)
	}
	return rec, nil
}

// ListByActor returns interactions recorded by the given actor, in index
// order. A limit of 0 or less means no limit.
//
// Returns an empty slice (not nil) if the actor has no interactions.
func (s *Store) ListByActor(ctx context.Context, actor string, limit int) ([]ledger.Interaction, error) {
	query := `
		SELECT idx, actor, ts, action, record_hash, chain_hash
		FROM interactions
		WHERE actor = ?
		ORDER BY idx ASC
	`
	args := []any{actor}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query interactions by actor: %w", err)
	}
	defer rows.Close()

	return collectInteractions(rows)
}

// List returns interactions in index order. A limit of 0 or less means no
// limit. The limit is applied in SQL, so a bounded read never loads the
// full table.
//
// Returns an empty slice (not nil) if the log is empty.
func (s *Store) List(ctx context.Context, limit int) ([]ledger.Interaction, error) {
	query := `
		SELECT idx, actor, ts, action, record_hash, chain_hash
		FROM interactions
		ORDER BY idx ASC
	`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	return collectInteractions(rows)
}

// ReadAll returns the full sequence in index order. Used by chain
// verification.
func (s *Store) ReadAll(ctx context.Context) ([]ledger.Interaction, error) {
	return s.List(ctx, 0)
}

// collectInteractions drains rows into a slice, never returning nil.
func collectInteractions(rows *sql.Rows) ([]ledger.Interaction, error) {
	var recs []ledger.Interaction
	for rows.Next() {
		rec, err := scanInteraction(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}

	if recs == nil {
		recs = []ledger.Interaction{}
	}
	return recs, nil
}

// scanInteraction scans a row into an Interaction.
func scanInteraction(rows *sql.Rows) (ledger.Interaction, error) {
	var rec ledger.Interaction
	if err := rows.Scan(
		&rec.Index, &rec.Actor, &rec.Timestamp, &rec.Action,
		&rec.RecordHash, &rec.ChainHash,
	); err != nil {
		return ledger.Interaction{}, fmt.Errorf("scan interaction: %w", err)
	}
	return rec, nil
}

// scanInteractionRow scans a single row into an Interaction.
func scanInteractionRow(row *sql.Row) (ledger.Interaction, error) {
	var rec ledger.Interaction
	if err := row.Scan(
		&rec.Index, &rec.Actor, &rec.Timestamp, &rec.Action,
		&rec.RecordHash, &rec.ChainHash,
	); err != nil {
		return ledger.Interaction{}, err
	}
	return rec, nil
}
