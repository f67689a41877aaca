package retrieval

import (
	"context"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/llm"
	"recall-ai/internal/storage"
	"recall-ai/internal/vectorstore"
)

// vectorChannel retrieves candidates by embedding the query and hydrating
// the nearest neighbors from storage. Every failure degrades to an empty
// result; this channel never propagates errors into the pipeline.
type vectorChannel struct {
	embedder   llm.Embedder
	vectors    vectorstore.VectorStore
	memories   storage.MemoryStore
	collection string
}

// retrieve returns up to k items in similarity order. Callers must not
// invoke it with k <= 0.
func (c *vectorChannel) retrieve(ctx context.Context, query string, k int) []ContextItem {
	logger := contextutil.LoggerFromContext(ctx)

	embeddings, err := c.embedder.EmbedTexts(ctx, []string{query})
	if err != nil || len(embeddings) == 0 {
		logger.WarnContext(ctx, "vector channel: query embedding failed", "error", err)
		return nil
	}

	results, err := c.vectors.Search(ctx, c.collection, embeddings[0], k, "")
	if err != nil {
		logger.WarnContext(ctx, "vector channel: index search failed", "error", err)
		return nil
	}
	if len(results) == 0 {
		return nil
	}

	ids := make([]string, 0, len(results))
	similarity := make(map[string]float32, len(results))
	for _, result := range results {
		if result.PointID == "" {
			continue
		}
		ids = append(ids, result.PointID)
		similarity[result.PointID] = result.Score
	}

	records, err := c.memories.GetByIDs(ctx, ids)
	if err != nil {
		logger.WarnContext(ctx, "vector channel: hydration failed", "error", err)
		return nil
	}

	items := make([]ContextItem, 0, len(records))
	for _, record := range records {
		item := itemFromMemory(record, SourceVector)
		item.Meta["similarity"] = float64(similarity[record.ID])
		items = append(items, item)
	}

	logger.DebugContext(ctx, "vector channel completed", "requested", k, "hydrated", len(items))
	return items
}

// itemFromMemory converts a storage record into a candidate item. The
// record's own metadata is copied so later passes never alias stored maps.
func itemFromMemory(record *storage.Memory, source Source) ContextItem {
	meta := make(map[string]any, len(record.Metadata)+4)
	for k, v := range record.Metadata {
		meta[k] = v
	}
	meta["namespace"] = record.Namespace
	meta["source_id"] = record.SourceID
	if record.NamedEntities != "" {
		meta["named_entities"] = record.NamedEntities
	}
	if record.ContentClassification != "" {
		meta["classification"] = record.ContentClassification
	}

	return ContextItem{
		ID:        record.ID,
		Content:   record.Content,
		Source:    source,
		Timestamp: record.CreatedAt,
		Meta:      meta,
	}
}
