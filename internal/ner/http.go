package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPExtractor calls an external NER service over HTTP.
type HTTPExtractor struct {
	BaseURL string
	client  *http.Client
}

// NewHTTPExtractor creates a new HTTP-backed extractor.
func NewHTTPExtractor(baseURL string) *HTTPExtractor {
	return &HTTPExtractor{
		BaseURL: baseURL,
		client:  http.DefaultClient,
	}
}

type extractRequest struct {
	Text string `json:"text"`
}

// ExtractEntities posts the text to the NER service and decodes the result.
func (c *HTTPExtractor) ExtractEntities(ctx context.Context, text string) (*ExtractionResult, error) {
	url := fmt.Sprintf("%s/v1/extract", c.BaseURL)

	body, err := json.Marshal(extractRequest{Text: text})
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

	var result ExtractionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}
