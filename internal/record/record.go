package record

// Kind distinguishes single-item records from ordered batches.
type Kind string

const (
	KindSingle Kind = "single"
	KindBatch  Kind = "batch"
)

// SourceRef points at a previously sent message so the platform can
// replay it verbatim into another chat.
type SourceRef struct {
	// ChatID is the chat the original message lives in
	ChatID int64 `json:"chat_id"`

	// MessageID is the platform message id within that chat
	MessageID int `json:"message_id"`
}

// Record is one unit of distributable content behind a token.
// Immutable after creation; deleted only by explicit delete or purge.
type Record struct {
	// Token is a ULID that uniquely identifies this record and is
	// embedded in the distributable link
	Token string

	// Kind is single or batch
	Kind Kind

	// Refs holds the source references in capture order.
	// Exactly one for single, at least one for batch.
	Refs []SourceRef

	// CreatedAt is the Unix timestamp when the record was committed
	CreatedAt int64
}

// Summary is the listing view of a record.
type Summary struct {
	Token     string `json:"token"`
	Kind      Kind   `json:"kind"`
	Items     int    `json:"items"`
	CreatedAt int64  `json:"created_at"`
}

// Channel is one required membership a requester must hold before
// content is released.
type Channel struct {
	// ChatID is the resolved platform id of the channel
	ChatID int64 `json:"chat_id"`

	// Label is the identifier as the operator entered it (e.g. "@news")
	Label string `json:"label"`
}
