package store

import (
	"context"
	"fmt"

	"github.com/roehl/interlog/internal/ledger"
)

// VerifyChain recomputes every record hash and chain hash over the stored
// sequence and reports the first divergence.
//
// A divergence means a stored record no longer matches the content it was
// hashed from, or the chain was broken by an out-of-sequence index. The
// returned error wraps a CHAIN_DIVERGENCE coded error naming the index.
//
// Returns the number of verified records on success.
func (s *Store) VerifyChain(ctx context.Context) (int64, error) {
	recs, err := s.ReadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("verify chain: %w", err)
	}

	prev := ledger.GenesisChainHash
	for i, rec := range recs {
		if rec.Index != int64(i) {
			return int64(i), ledger.NewChainDivergenceError(
				rec.Index,
				fmt.Sprintf("sequence gap: position %d holds index %d", i, rec.Index),
			)
		}

		recordHash, err := ledger.RecordHash(rec.Index, rec.Actor, rec.Timestamp, rec.Action)
		if err != nil {
			return int64(i), fmt.Errorf("verify chain at %d: %w", rec.Index, err)
		}
		if recordHash != rec.RecordHash {
			return int64(i), ledger.NewChainDivergenceError(
				rec.Index, "record hash does not match stored content",
			)
		}

		chainHash := ledger.ChainHash(prev, recordHash)
		if chainHash != rec.ChainHash {
			return int64(i), ledger.NewChainDivergenceError(
				rec.Index, "chain hash does not link to previous record",
			)
		}
		prev = rec.ChainHash
	}

	return int64(len(recs)), nil
}
