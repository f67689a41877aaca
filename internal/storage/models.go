package storage

import "time"

// Memory represents one indexed unit of personal data: a conversation turn,
// a note, a document fragment. It is the record hydrated by both retrieval
// channels.
type Memory struct {
	ID                    string         // UUID (same as the Qdrant point ID)
	Namespace             string         // Logical bucket, e.g. "conversations", "notes", "documents"
	SourceID              string         // Identifier of the originating document or session
	Content               string         // Raw text content
	Metadata              map[string]any // Opaque key-value metadata (stored as JSON)
	SummaryContent        string         // Generated summary, if any
	NamedEntities         string         // Extracted entity mentions, newline separated
	ContentClassification string         // Classification label, e.g. "personal", "work"
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
