package retrieval

import (
	"context"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/storage"
)

// keywordChannel retrieves candidates by full-text search, falling back to
// field-prioritized pattern matching when the FTS index is absent or the
// query fails. Like the vector channel it never propagates errors.
type keywordChannel struct {
	memories     storage.MemoryStore
	ftsAvailable bool
}

// retrieve returns up to n items for the extracted keywords. Callers must
// not invoke it with n <= 0.
func (c *keywordChannel) retrieve(ctx context.Context, keywords []string, n int) []ContextItem {
	logger := contextutil.LoggerFromContext(ctx)

	if len(keywords) == 0 {
		return nil
	}

	if c.ftsAvailable {
		records, err := c.memories.SearchFTS(ctx, keywords, n)
		if err == nil {
			return itemsFromMemories(records)
		}
		logger.WarnContext(ctx, "keyword channel: full-text query failed, using pattern fallback", "error", err)
	}

	records, err := c.memories.SearchLike(ctx, keywords, n)
	if err != nil {
		logger.WarnContext(ctx, "keyword channel: pattern search failed", "error", err)
		return nil
	}
	return itemsFromMemories(records)
}

func itemsFromMemories(records []*storage.Memory) []ContextItem {
	items := make([]ContextItem, 0, len(records))
	for _, record := range records {
		items = append(items, itemFromMemory(record, SourceKeyword))
	}
	return items
}
