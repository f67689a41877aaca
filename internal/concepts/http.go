package concepts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPExpander calls an external concept-expansion service over HTTP.
type HTTPExpander struct {
	BaseURL string
	client  *http.Client
}

// NewHTTPExpander creates a new HTTP-backed expander.
func NewHTTPExpander(baseURL string) *HTTPExpander {
	return &HTTPExpander{
		BaseURL: baseURL,
		client:  http.DefaultClient,
	}
}

type expandRequest struct {
	Concepts            []string `json:"concepts"`
	MaxExpansions       int      `json:"max_expansions"`
	SimilarityThreshold float64  `json:"similarity_threshold"`
}

type expandResponse struct {
	Expansions []string `json:"expansions"`
}

// Expand posts the concept list to the expansion service.
func (c *HTTPExpander) Expand(ctx context.Context, concepts []string, maxExpansions int, similarityThreshold float64) ([]string, error) {
	url := fmt.Sprintf("%s/v1/expand", c.BaseURL)

	body, err := json.Marshal(expandRequest{
		Concepts:            concepts,
		MaxExpansions:       maxExpansions,
		SimilarityThreshold: similarityThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var expandResp expandResponse
	if err := json.NewDecoder(resp.Body).Decode(&expandResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return expandResp.Expansions, nil
}
