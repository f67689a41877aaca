package llm

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_llm.go -package=mocks recall-ai/internal/llm Generator,Embedder

import "context"

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatParams holds parameters for chat completion requests.
type ChatParams struct {
	// Model specifies the model to use. If empty, the client's default model is used.
	Model string

	// MaxTokens specifies the maximum number of tokens to generate.
	// If 0, no limit is applied.
	MaxTokens int

	// Temperature controls the randomness of the output.
	Temperature float32
}

// Usage reports token accounting for one completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GenerateResult is the outcome of one chat completion.
type GenerateResult struct {
	Content string
	Model   string
	Usage   Usage
}

// Generator is the LLM collaborator contract. The retrieval engine uses it
// for context summarization; the assistant service uses it for answering.
type Generator interface {
	Generate(ctx context.Context, messages []Message, params ChatParams) (*GenerateResult, error)
}

// Embedder is the embedding collaborator contract, used for query embedding
// and semantic-dedup candidate embedding. One call handles a whole batch.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
