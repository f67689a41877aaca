// Package service holds the assistant's question-answering flow: build
// grounding context from personal data, then answer with the LLM.
package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_context_builder.go -package=mocks recall-ai/internal/service ContextBuilder
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_assistant.go -package=mocks -mock_names=Assistant=MockAssistant recall-ai/internal/service Assistant

import (
	"context"
	"fmt"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/llm"
	"recall-ai/internal/retrieval"
)

const (
	answerMaxTokens   = 1024
	answerTemperature = 0.7

	systemPrompt = "You are a personal assistant with access to the user's personal data. " +
		"Answer using only the retrieved context below. If the context does not contain " +
		"the answer, say so instead of guessing."
)

// ContextBuilder assembles grounding context for a query.
// This interface is defined from the service layer's perspective (consumer-first).
type ContextBuilder interface {
	BuildContext(ctx context.Context, req retrieval.ContextRequest) retrieval.PrioritizedContext
}

// AskRequest represents a question in the domain layer.
type AskRequest struct {
	Question string `validate:"required"`
}

// AskResponse represents an answered question.
type AskResponse struct {
	Answer            string
	ContextSummary    string
	SourceAttribution map[string]int
	ItemsUsed         int
}

// Assistant answers questions grounded in the user's personal data.
type Assistant interface {
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

type assistant struct {
	contexts  ContextBuilder
	generator llm.Generator
}

// NewAssistant creates an Assistant.
func NewAssistant(contexts ContextBuilder, generator llm.Generator) Assistant {
	return &assistant{contexts: contexts, generator: generator}
}

// Ask builds retrieval context for the question and generates an answer.
// Retrieval never fails; an empty context still produces an answer that
// says nothing relevant was found.
func (s *assistant) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if req.Question == "" {
		logger.WarnContext(ctx, "empty question in ask request")
		return AskResponse{}, &ValidationError{
			Field:   "question",
			Message: "cannot be empty",
		}
	}

	prioritized := s.contexts.BuildContext(ctx, retrieval.ContextRequest{Query: req.Question})

	prompt := systemPrompt
	if prioritized.ContextText != "" {
		prompt = fmt.Sprintf("%s\n\n%s", systemPrompt, prioritized.ContextText)
	}

	result, err := s.generator.Generate(ctx, []llm.Message{
		{Role: "system", Content: prompt},
		{Role: "user", Content: req.Question},
	}, llm.ChatParams{
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to generate answer", "error", err)
		return AskResponse{}, WrapError(err, "failed to generate answer")
	}

	logger.InfoContext(ctx, "question answered",
		"question_length", len(req.Question),
		"context_items", prioritized.TotalItems,
		"answer_length", len(result.Content),
	)
	return AskResponse{
		Answer:            result.Content,
		ContextSummary:    prioritized.Summary,
		SourceAttribution: prioritized.SourceAttribution,
		ItemsUsed:         prioritized.TotalItems,
	}, nil
}
