package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"recall-ai/internal/concepts"
	"recall-ai/internal/config"
	"recall-ai/internal/http"
	"recall-ai/internal/ingest"
	"recall-ai/internal/llm"
	"recall-ai/internal/ner"
	"recall-ai/internal/retrieval"
	"recall-ai/internal/service"
	"recall-ai/internal/storage"
	"recall-ai/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	ftsAvailable, err := storage.Migrate(db)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath, "fts_available", ftsAvailable)

	memoryRepo := storage.NewMemoryRepo(db)

	ctx := context.Background()

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.EmbeddingSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.EmbeddingSize)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.EmbeddingSize)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.EmbeddingSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.EmbeddingSize, len(testEmbeddings[0]))
	}
	slog.Info("Embedding client validated", "vector_size", cfg.EmbeddingSize)

	// Create LLM client (external service layer)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	// Entity extraction: external service when configured, local rules
	// otherwise.
	var extractor ner.Extractor
	if cfg.NERBaseURL != "" {
		extractor = ner.NewHTTPExtractor(cfg.NERBaseURL)
		slog.Info("Using external NER service", "base_url", cfg.NERBaseURL)
	} else {
		extractor = ner.NewRuleExtractor()
		slog.Info("Using rule-based entity extraction")
	}

	// Concept expansion is optional; skipped entirely when no service is
	// configured.
	var expander concepts.Expander
	if cfg.ConceptBaseURL != "" {
		cached, err := concepts.NewCachedExpander(concepts.NewHTTPExpander(cfg.ConceptBaseURL), cfg.ConceptCacheSize)
		if err != nil {
			log.Fatalf("Failed to create concept expander: %v", err)
		}
		expander = cached
		slog.Info("Using concept expansion service", "base_url", cfg.ConceptBaseURL, "cache_size", cfg.ConceptCacheSize)
	}

	// Create retrieval engine
	engine := retrieval.NewEngine(retrieval.Deps{
		Embedder:     embedder,
		Generator:    llmClient,
		Vectors:      vectorStore,
		Memories:     memoryRepo,
		Entities:     extractor,
		Concepts:     expander,
		Collection:   cfg.QdrantCollection,
		FTSAvailable: ftsAvailable,
	}, retrieval.Config{
		WeightConversation: cfg.WeightConversation,
		WeightSemantic:     cfg.WeightSemantic,
		WeightKeyword:      cfg.WeightKeyword,
		DedupThreshold:     cfg.DedupThreshold,
	})
	slog.Info("Retrieval engine initialized")

	// Create ingestion pipeline and assistant service
	pipeline := ingest.NewPipeline(memoryRepo, embedder, vectorStore, extractor, cfg.QdrantCollection)
	assistant := service.NewAssistant(engine, llmClient)

	// Create router with dependencies
	deps := &http.Deps{
		Contexts:   engine,
		Assistant:  assistant,
		Pipeline:   pipeline,
		Vectors:    vectorStore,
		Memories:   memoryRepo,
		Collection: cfg.QdrantCollection,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
