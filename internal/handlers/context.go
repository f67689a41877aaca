// Package handlers contains the HTTP handlers for the assistant API.
package handlers

import (
	"encoding/json"
	"net/http"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/retrieval"
	"recall-ai/internal/service"
)

// ContextHandler handles HTTP requests for raw context retrieval.
type ContextHandler struct {
	contexts service.ContextBuilder
}

// NewContextHandler creates a new ContextHandler.
func NewContextHandler(contexts service.ContextBuilder) *ContextHandler {
	return &ContextHandler{contexts: contexts}
}

// ContextRequest represents the HTTP request payload for context retrieval.
// This mirrors retrieval.ContextRequest but is defined here for HTTP layer
// separation.
type ContextRequest struct {
	Query            string `json:"query"`
	MaxResults       int    `json:"max_results,omitempty"`
	MaxContextLength int    `json:"max_context_length,omitempty"`
}

// ContextResponse represents the HTTP response payload for context
// retrieval. Processing time is serialized as seconds.
type ContextResponse struct {
	Items             []retrieval.ContextItem `json:"items"`
	Summary           string                  `json:"summary"`
	ContextText       string                  `json:"context_text"`
	SourceAttribution map[string]int          `json:"source_attribution"`
	TotalItems        int                     `json:"total_items"`
	ProcessingTime    float64                 `json:"processing_time"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles HTTP requests for context retrieval.
func (h *ContextHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Query == "" {
		logger.WarnContext(ctx, "empty query in context request")
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	prioritized := h.contexts.BuildContext(ctx, retrieval.ContextRequest{
		Query:            req.Query,
		MaxResults:       req.MaxResults,
		MaxContextLength: req.MaxContextLength,
	})

	resp := ContextResponse{
		Items:             prioritized.Items,
		Summary:           prioritized.Summary,
		ContextText:       prioritized.ContextText,
		SourceAttribution: prioritized.SourceAttribution,
		TotalItems:        prioritized.TotalItems,
		ProcessingTime:    prioritized.ProcessingTime.Seconds(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
