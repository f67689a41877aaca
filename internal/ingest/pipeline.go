// Package ingest implements the write path: storing a memory record,
// backfilling search fields from entity extraction, and upserting its
// embedding so the retrieval engine can find it.
package ingest

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/llm"
	"recall-ai/internal/ner"
	"recall-ai/internal/storage"
	"recall-ai/internal/vectorstore"
)

var (
	// ErrEmptyNamespace is returned when a request has no namespace.
	ErrEmptyNamespace = errors.New("namespace is required")
	// ErrEmptyContent is returned when a request has no content.
	ErrEmptyContent = errors.New("content is required")
)

// Request carries one memory to ingest.
type Request struct {
	Namespace string         `json:"namespace"`
	SourceID  string         `json:"source_id"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Pipeline stores, annotates and embeds incoming memories.
type Pipeline struct {
	memories   storage.MemoryStore
	embedder   llm.Embedder
	vectors    vectorstore.VectorStore
	entities   ner.Extractor // nil skips entity backfill
	collection string
	flattener  *markdownFlattener
	now        func() time.Time
}

// NewPipeline creates an ingestion pipeline. The entity extractor is
// optional.
func NewPipeline(memories storage.MemoryStore, embedder llm.Embedder, vectors vectorstore.VectorStore, entities ner.Extractor, collection string) *Pipeline {
	return &Pipeline{
		memories:   memories,
		embedder:   embedder,
		vectors:    vectors,
		entities:   entities,
		collection: collection,
		flattener:  newMarkdownFlattener(),
		now:        time.Now,
	}
}

// Ingest stores one memory and indexes its embedding. Storage failures are
// returned; embedding and upsert failures only log, leaving the row
// unembedded so keyword search still covers it and the strategy selector
// sees the reduced coverage.
func (p *Pipeline) Ingest(ctx context.Context, req Request) (*storage.Memory, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Namespace) == "" {
		return nil, ErrEmptyNamespace
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyContent
	}

	plain, title := p.flattener.flatten([]byte(req.Content), req.SourceID)
	if plain == "" {
		plain = strings.TrimSpace(req.Content)
	}

	now := p.now().UTC()
	memory := &storage.Memory{
		ID:             uuid.NewString(),
		Namespace:      req.Namespace,
		SourceID:       req.SourceID,
		Content:        req.Content,
		Metadata:       req.Metadata,
		SummaryContent: title,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if classification, _ := req.Metadata["classification"].(string); classification != "" {
		memory.ContentClassification = classification
	}

	if p.entities != nil {
		result, err := p.entities.ExtractEntities(ctx, plain)
		if err != nil {
			logger.WarnContext(ctx, "entity backfill failed, storing without entities", "error", err)
		} else if mentions := result.Mentions(); len(mentions) > 0 {
			memory.NamedEntities = strings.Join(mentions, "\n")
		}
	}

	if err := p.memories.Insert(ctx, memory); err != nil {
		return nil, err
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, []string{plain})
	if err != nil || len(embeddings) == 0 {
		logger.WarnContext(ctx, "embedding failed, memory stored unembedded", "memory_id", memory.ID, "error", err)
		return memory, nil
	}

	point := vectorstore.Point{
		ID:  memory.ID,
		Vec: embeddings[0],
		Meta: map[string]any{
			"namespace": memory.Namespace,
			"source_id": memory.SourceID,
		},
	}
	if err := p.vectors.Upsert(ctx, p.collection, []vectorstore.Point{point}); err != nil {
		logger.WarnContext(ctx, "vector upsert failed, memory stored unembedded", "memory_id", memory.ID, "error", err)
		return memory, nil
	}

	logger.InfoContext(ctx, "memory ingested", "memory_id", memory.ID, "namespace", memory.Namespace)
	return memory, nil
}
