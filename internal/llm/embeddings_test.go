package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func embeddingsHandler(t *testing.T, vectors [][]float64) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		data := make([]map[string]any, len(vectors))
		for i, vec := range vectors {
			data[i] = map[string]any{"embedding": vec}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	}
}

func TestEmbedTexts(t *testing.T) {
	server := httptest.NewServer(embeddingsHandler(t, [][]float64{
		{0.1, 0.2, 0.3},
		{0.4, 0.5, 0.6},
	}))
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "key", "embed-model", 3)
	got, err := client.EmbedTexts(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("EmbedTexts() returned %d vectors, want 2", len(got))
	}
	if got[0][0] != float32(0.1) || got[1][2] != float32(0.6) {
		t.Errorf("unexpected vector contents: %v", got)
	}
}

func TestEmbedTextsEmptyInput(t *testing.T) {
	client := NewEmbeddingsClient("http://localhost:8081", "key", "embed-model", 3)
	if _, err := client.EmbedTexts(context.Background(), nil); err == nil {
		t.Fatal("EmbedTexts(nil) expected error")
	}
}

func TestEmbedTextsSizeMismatch(t *testing.T) {
	server := httptest.NewServer(embeddingsHandler(t, [][]float64{{0.1, 0.2}}))
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "key", "embed-model", 3)
	if _, err := client.EmbedTexts(context.Background(), []string{"text"}); err == nil {
		t.Fatal("EmbedTexts() should reject wrong vector size")
	}
}

func TestEmbedTextsCountMismatch(t *testing.T) {
	server := httptest.NewServer(embeddingsHandler(t, [][]float64{{0.1, 0.2, 0.3}}))
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "key", "embed-model", 3)
	if _, err := client.EmbedTexts(context.Background(), []string{"one", "two"}); err == nil {
		t.Fatal("EmbedTexts() should reject mismatched embedding count")
	}
}
