package ledger

import (
	"errors"
	"fmt"
)

// Error represents an error raised by a ledger operation.
//
// Ledger errors include:
//   - Index out of range: a read requested an index at or past the count
//   - No principal: a record call arrived without an authenticated caller
//   - Chain divergence: a stored record's hashes no longer verify
//
// Error includes structured fields for diagnostics.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Index is the offending index (for out-of-range and divergence errors).
	Index int64

	// Count is the sequence length at the time of the error.
	Count int64
}

// ErrorCode categorizes ledger errors.
type ErrorCode string

const (
	// ErrCodeIndexOutOfRange indicates a read past the end of the sequence.
	ErrCodeIndexOutOfRange ErrorCode = "INDEX_OUT_OF_RANGE"

	// ErrCodeNoPrincipal indicates a record call with no authenticated caller.
	ErrCodeNoPrincipal ErrorCode = "NO_PRINCIPAL"

	// ErrCodeChainDivergence indicates a stored record failed hash verification.
	ErrCodeChainDivergence ErrorCode = "CHAIN_DIVERGENCE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeIndexOutOfRange:
		return fmt.Sprintf("%s: %s (index=%d, count=%d)", e.Code, e.Message, e.Index, e.Count)
	case ErrCodeChainDivergence:
		return fmt.Sprintf("%s: %s (index=%d)", e.Code, e.Message, e.Index)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// IsIndexOutOfRange returns true if the error is an out-of-range read.
// Uses errors.As to handle wrapped errors.
func IsIndexOutOfRange(err error) bool {
	var le *Error
	if errors.As(err, &le) {
		return le.Code == ErrCodeIndexOutOfRange
	}
	return false
}

// IsNoPrincipal returns true if the error is a missing-principal error.
// Uses errors.As to handle wrapped errors.
func IsNoPrincipal(err error) bool {
	var le *Error
	if errors.As(err, &le) {
		return le.Code == ErrCodeNoPrincipal
	}
	return false
}

// IsChainDivergence returns true if the error is a chain verification failure.
// Uses errors.As to handle wrapped errors.
func IsChainDivergence(err error) bool {
	var le *Error
	if errors.As(err, &le) {
		return le.Code == ErrCodeChainDivergence
	}
	return false
}

// NewIndexOutOfRangeError creates an Error for a read past the end.
func NewIndexOutOfRangeError(index, count int64) *Error {
	return &Error{
		Code:    ErrCodeIndexOutOfRange,
		Message: "index is not less than count",
		Index:   index,
		Count:   count,
	}
}

// NewNoPrincipalError creates an Error for an unauthenticated record call.
func NewNoPrincipalError() *Error {
	return &Error{
		Code:    ErrCodeNoPrincipal,
		Message: "no authenticated principal bound to context",
	}
}

// NewChainDivergenceError creates an Error for a failed hash verification.
func NewChainDivergenceError(index int64, detail string) *Error {
	return &Error{
		Code:    ErrCodeChainDivergence,
		Message: detail,
		Index:   index,
	}
}
