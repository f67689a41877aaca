package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/ingest"
	"recall-ai/internal/storage"
)

// Ingester stores one memory and indexes its embedding.
// This interface is defined from the handler's perspective (consumer-first).
type Ingester interface {
	Ingest(ctx context.Context, req ingest.Request) (*storage.Memory, error)
}

// MemoriesHandler handles HTTP requests for memory ingestion.
type MemoriesHandler struct {
	pipeline Ingester
}

// NewMemoriesHandler creates a new MemoriesHandler.
func NewMemoriesHandler(pipeline Ingester) *MemoriesHandler {
	return &MemoriesHandler{pipeline: pipeline}
}

// MemoryResponse represents the HTTP response payload for a stored memory.
type MemoryResponse struct {
	ID             string    `json:"id"`
	Namespace      string    `json:"namespace"`
	SourceID       string    `json:"source_id,omitempty"`
	SummaryContent string    `json:"summary_content,omitempty"`
	NamedEntities  string    `json:"named_entities,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ServeHTTP handles HTTP requests for memory ingestion.
func (h *MemoriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ingest.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	memory, err := h.pipeline.Ingest(ctx, req)
	if err != nil {
		if errors.Is(err, ingest.ErrEmptyNamespace) || errors.Is(err, ingest.ErrEmptyContent) {
			logger.WarnContext(ctx, "invalid ingest request", "error", err)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.ErrorContext(ctx, "failed to ingest memory", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to store memory")
		return
	}

	resp := MemoryResponse{
		ID:             memory.ID,
		Namespace:      memory.Namespace,
		SourceID:       memory.SourceID,
		SummaryContent: memory.SummaryContent,
		NamedEntities:  memory.NamedEntities,
		CreatedAt:      memory.CreatedAt,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
