package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL         string
	LLMModelName       string
	LLMAPIKey          string
	EmbeddingBaseURL   string
	EmbeddingModelName string
	EmbeddingSize      int
	DBPath             string
	QdrantURL          string
	QdrantCollection   string

	// NERBaseURL points at an external entity-extraction service.
	// When empty, the local rule-based extractor is used instead.
	NERBaseURL string

	// ConceptBaseURL points at an external concept-expansion knowledge base.
	// When empty, concept expansion is disabled.
	ConceptBaseURL   string
	ConceptCacheSize int

	// Retrieval tunables. Defaults preserve behavioral parity with the
	// original scoring design; see internal/retrieval.
	WeightConversation float64
	WeightSemantic     float64
	WeightKeyword      float64
	DedupThreshold     float64

	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try current directory first, then walk up to find the project root.
	_ = godotenv.Load()
	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:       getEnv("LLM_MODEL", "Llama-3.1-8B-Instruct"),
		LLMAPIKey:          getEnv("LLM_API_KEY", "dummy-key"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "granite-embedding-278m-multilingual"),
		DBPath:             getEnv("DB_PATH", "./data/recall-ai.db"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "memories"),
		NERBaseURL:         getEnv("NER_BASE_URL", ""),
		ConceptBaseURL:     getEnv("CONCEPT_BASE_URL", ""),
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	// Must match the output vector size of the embeddings model. If this
	// changes, the Qdrant collection has to be recreated.
	size, err := getEnvInt("EMBEDDING_SIZE", 0)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("EMBEDDING_SIZE is required and must be greater than 0")
	}
	cfg.EmbeddingSize = size

	if cfg.ConceptCacheSize, err = getEnvInt("CONCEPT_CACHE_SIZE", 512); err != nil {
		return nil, err
	}
	if cfg.ConceptCacheSize <= 0 {
		return nil, fmt.Errorf("CONCEPT_CACHE_SIZE must be greater than 0")
	}

	if cfg.WeightConversation, err = getEnvFloat("SOURCE_WEIGHT_CONVERSATION", 1.0); err != nil {
		return nil, err
	}
	if cfg.WeightSemantic, err = getEnvFloat("SOURCE_WEIGHT_SEMANTIC", 0.7); err != nil {
		return nil, err
	}
	if cfg.WeightKeyword, err = getEnvFloat("SOURCE_WEIGHT_KEYWORD", 0.5); err != nil {
		return nil, err
	}
	if cfg.DedupThreshold, err = getEnvFloat("DEDUP_SIMILARITY_THRESHOLD", 0.85); err != nil {
		return nil, err
	}
	if cfg.DedupThreshold <= 0 || cfg.DedupThreshold > 1 {
		return nil, fmt.Errorf("DEDUP_SIMILARITY_THRESHOLD must be in (0, 1]")
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	// Create the data directory if it doesn't exist (for the DB file).
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return f, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error (got %q)", s)
	}
}
