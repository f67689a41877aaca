package retrieval

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"recall-ai/internal/concepts"
	"recall-ai/internal/contextutil"
	"recall-ai/internal/llm"
	"recall-ai/internal/ner"
	"recall-ai/internal/storage"
	"recall-ai/internal/vectorstore"
)

// Request defaults and caps.
const (
	defaultMaxResults       = 10
	maxResultsCap           = 50
	defaultMaxContextLength = 4000
)

// Deps carries the engine's collaborators. Generator, Entities and
// Concepts are optional; the engine degrades without them.
type Deps struct {
	Embedder     llm.Embedder
	Generator    llm.Generator
	Vectors      vectorstore.VectorStore
	Memories     storage.MemoryStore
	Entities     ner.Extractor
	Concepts     concepts.Expander
	Collection   string
	FTSAvailable bool
}

// Engine assembles grounding context for the assistant. One Engine serves
// all requests; per-request state lives on the stack, so no locking is
// needed.
type Engine struct {
	vectors    vectorstore.VectorStore
	collection string

	keywords  *KeywordExtractor
	vectorCh  *vectorChannel
	keywordCh *keywordChannel
	dedup     *deduplicator
	scorer    *scorer
	formatter *formatter

	now func() time.Time
}

// NewEngine creates a retrieval engine with the given collaborators and
// tunables.
func NewEngine(deps Deps, cfg Config) *Engine {
	return &Engine{
		vectors:    deps.Vectors,
		collection: deps.Collection,
		keywords:   NewKeywordExtractor(deps.Entities, deps.Concepts),
		vectorCh: &vectorChannel{
			embedder:   deps.Embedder,
			vectors:    deps.Vectors,
			memories:   deps.Memories,
			collection: deps.Collection,
		},
		keywordCh: &keywordChannel{
			memories:     deps.Memories,
			ftsAvailable: deps.FTSAvailable,
		},
		dedup:     &deduplicator{embedder: deps.Embedder, cfg: cfg},
		scorer:    &scorer{cfg: cfg, now: time.Now},
		formatter: &formatter{generator: deps.Generator},
		now:       time.Now,
	}
}

// BuildContext runs one retrieval: strategy selection, both channels,
// dedup, scoring, budget selection and formatting. It always returns a
// well-formed result; failures degrade to fewer (possibly zero) items, and
// a fully failed retrieval yields the explicit no-information summary
// rather than an error.
func (e *Engine) BuildContext(ctx context.Context, req ContextRequest) PrioritizedContext {
	logger := contextutil.LoggerFromContext(ctx)
	started := e.now()

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if maxResults > maxResultsCap {
		maxResults = maxResultsCap
	}
	maxContextLength := req.MaxContextLength
	if maxContextLength <= 0 {
		maxContextLength = defaultMaxContextLength
	}

	embeddingCount, err := e.vectors.Count(ctx, e.collection)
	if err != nil {
		logger.WarnContext(ctx, "vector count unavailable, assuming empty index", "error", err)
		embeddingCount = 0
	}
	plan := SelectStrategy(embeddingCount, maxResults)

	logger.InfoContext(ctx, "retrieval started",
		"query", req.Query,
		"mode", plan.Mode,
		"vector_quota", plan.VectorQuota,
		"keyword_quota", plan.KeywordQuota,
		"embedding_count", plan.EmbeddingCount,
	)

	// The channels are independent; run them in parallel and join before
	// dedup. Each channel swallows its own failures, so the group never
	// returns an error.
	var vectorItems, keywordItems []ContextItem
	g, gctx := errgroup.WithContext(ctx)
	if plan.VectorQuota > 0 {
		g.Go(func() error {
			vectorItems = e.vectorCh.retrieve(gctx, req.Query, plan.VectorQuota)
			return nil
		})
	}
	if plan.KeywordQuota > 0 {
		g.Go(func() error {
			keywords := e.keywords.Extract(gctx, req.Query)
			keywordItems = e.keywordCh.retrieve(gctx, keywords, plan.KeywordQuota)
			return nil
		})
	}
	_ = g.Wait()

	combined := e.dedup.dedup(ctx, vectorItems, keywordItems)
	scored := e.scorer.score(combined, req.Query)
	selected := selectWithinBudget(scored, maxContextLength)

	summary := e.formatter.summarize(ctx, selected, req.Query)

	attribution := make(map[string]int, 2)
	for _, item := range selected {
		attribution[string(item.Source)]++
	}

	result := PrioritizedContext{
		Items:             selected,
		Summary:           summary,
		ContextText:       render(selected, summary),
		SourceAttribution: attribution,
		TotalItems:        len(selected),
		ProcessingTime:    e.now().Sub(started),
	}

	logger.InfoContext(ctx, "retrieval completed",
		"items", result.TotalItems,
		"vector_results", len(vectorItems),
		"keyword_results", len(keywordItems),
		"processing_time", result.ProcessingTime,
	)
	return result
}
