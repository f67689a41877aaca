package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/service"
)

// AskHandler handles HTTP requests for grounded question answering.
type AskHandler struct {
	assistant service.Assistant
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(assistant service.Assistant) *AskHandler {
	return &AskHandler{assistant: assistant}
}

// AskRequest represents the HTTP request payload for questions.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse represents the HTTP response payload for answered questions.
type AskResponse struct {
	Answer            string         `json:"answer"`
	ContextSummary    string         `json:"context_summary"`
	SourceAttribution map[string]int `json:"source_attribution"`
	ItemsUsed         int            `json:"items_used"`
}

// ServeHTTP handles HTTP requests for questions.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.assistant.Ask(ctx, service.AskRequest{Question: req.Question})
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			logger.WarnContext(ctx, "invalid ask request", "error", err)
			writeError(w, http.StatusBadRequest, validationErr.Error())
			return
		}
		// Retrieval degrades internally, so a failing Ask means the LLM
		// call itself failed.
		logger.ErrorContext(ctx, "ask request failed", "error", err)
		writeError(w, http.StatusBadGateway, "External service error")
		return
	}

	resp := AskResponse{
		Answer:            result.Answer,
		ContextSummary:    result.ContextSummary,
		SourceAttribution: result.SourceAttribution,
		ItemsUsed:         result.ItemsUsed,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
