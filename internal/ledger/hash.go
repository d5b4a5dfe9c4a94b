package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed record identity.
// Version suffix enables future algorithm migration.
const (
	DomainInteraction = "interlog/interaction/v1"
	DomainChain       = "interlog/chain/v1"
)

// GenesisChainHash is the previous-hash value for the first record.
const GenesisChainHash = "0000000000000000000000000000000000000000000000000000000000000000"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// RecordHash computes the content-addressed hash of an interaction.
// The hash is stable across restarts given the same fields.
func RecordHash(index int64, actor string, timestamp int64, action string) (string, error) {
	obj := map[string]any{
		"index":     index,
		"actor":     actor,
		"timestamp": timestamp,
		"action":    action,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("RecordHash: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainInteraction, canonical), nil
}

// ChainHash links a record hash to the chain hash of the previous record.
// The first record chains from GenesisChainHash.
func ChainHash(prevChainHash, recordHash string) string {
	h := sha256.New()
	h.Write([]byte(DomainChain))
	h.Write([]byte{0x00})
	h.Write([]byte(prevChainHash))
	h.Write([]byte{0x00})
	h.Write([]byte(recordHash))
	return hex.EncodeToString(h.Sum(nil))
}
