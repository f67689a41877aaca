// Package retrieval implements the adaptive hybrid retrieval and
// context-assembly engine: it combines vector-similarity and keyword
// channels over a user's personal data, tunes the split to how much of the
// store is embedded, and assembles a budgeted, scored context block for
// prompt injection.
package retrieval

import "time"

// Source identifies the retrieval channel an item came from.
type Source string

const (
	// SourceVector marks items found by vector similarity search.
	SourceVector Source = "vector"
	// SourceKeyword marks items found by keyword or full-text search.
	SourceKeyword Source = "keyword"
)

// ContextItem is one candidate piece of context. Items are created by the
// channel adapters; scoring and budget selection produce new copies rather
// than mutating shared records.
type ContextItem struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Source    Source         `json:"source"`
	Score     float64        `json:"relevance_score"`
	Timestamp time.Time      `json:"timestamp,omitempty"` // zero value means unknown
	Meta      map[string]any `json:"metadata,omitempty"`
}

// SearchMode is the retrieval regime picked by the strategy selector.
type SearchMode string

const (
	// SearchModeSQLOnly runs only the keyword channel. Used when nothing
	// is embedded yet.
	SearchModeSQLOnly SearchMode = "sql_only"
	// SearchModeSQLFavored biases the budget toward the keyword channel
	// while embedding coverage is still thin.
	SearchModeSQLFavored SearchMode = "sql_favored"
	// SearchModeHybrid splits the budget evenly between both channels.
	SearchModeHybrid SearchMode = "hybrid"
)

// RetrievalPlan fixes each channel's result quota for one query.
type RetrievalPlan struct {
	Mode           SearchMode `json:"search_mode"`
	VectorQuota    int        `json:"vector_quota"`
	KeywordQuota   int        `json:"keyword_quota"`
	EmbeddingCount int        `json:"embedding_count"`
}

// PrioritizedContext is the assembled result of one retrieval run.
type PrioritizedContext struct {
	Items             []ContextItem  `json:"items"`
	Summary           string         `json:"summary"`
	ContextText       string         `json:"context_text"`
	SourceAttribution map[string]int `json:"source_attribution"`
	TotalItems        int            `json:"total_items"`
	ProcessingTime    time.Duration  `json:"processing_time"`
}

// ContextRequest carries one build-context call's parameters.
type ContextRequest struct {
	Query            string `json:"query"`
	MaxResults       int    `json:"max_results,omitempty"`
	MaxContextLength int    `json:"max_context_length,omitempty"`
}

// Config holds the retrieval tunables. The defaults preserve parity with
// the original scoring design; override them through configuration, not by
// editing call sites.
type Config struct {
	// Source trust weights used for scoring and semantic-dedup tie breaks.
	WeightConversation float64
	WeightSemantic     float64
	WeightKeyword      float64

	// DedupThreshold is the cosine similarity above which two items are
	// considered near-duplicates.
	DedupThreshold float64
}

// DefaultConfig returns the parity defaults.
func DefaultConfig() Config {
	return Config{
		WeightConversation: 1.0,
		WeightSemantic:     0.7,
		WeightKeyword:      0.5,
		DedupThreshold:     0.85,
	}
}

// conversationNamespace is the namespace holding assistant conversation
// history; items from it carry the highest trust weight.
const conversationNamespace = "conversations"

// sourceWeight returns the fixed trust weight for an item.
func sourceWeight(item ContextItem, cfg Config) float64 {
	if item.Source == SourceKeyword {
		return cfg.WeightKeyword
	}
	if ns, _ := item.Meta["namespace"].(string); ns == conversationNamespace {
		return cfg.WeightConversation
	}
	return cfg.WeightSemantic
}
