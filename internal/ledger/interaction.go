package ledger

// Interaction is one recorded (actor, timestamp, action) triple.
//
// Interactions are immutable once appended. Reads return copies; since all
// fields are value types, assignment is a full copy and callers cannot
// mutate stored history through a returned Interaction.
type Interaction struct {
	// Index is the position assigned at append time, stable for the
	// lifetime of the log.
	Index int64 `json:"index"`

	// Actor identifies the authenticated caller that recorded the
	// interaction. Always derived from the invocation context, never from
	// a payload field.
	Actor string `json:"actor"`

	// Timestamp is seconds since the Unix epoch, assigned by the ledger's
	// clock at record time.
	Timestamp int64 `json:"timestamp"`

	// Action is the caller-supplied description. No format constraint.
	Action string `json:"action"`

	// RecordHash is the content-addressed hash of (index, actor,
	// timestamp, action).
	RecordHash string `json:"record_hash"`

	// ChainHash links this record to the previous record's chain hash,
	// making historical tampering detectable.
	ChainHash string `json:"chain_hash"`
}
