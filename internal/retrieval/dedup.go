package retrieval

import (
	"context"
	"math"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/llm"
)

// deduplicator removes exact-id duplicates across channels and then
// near-duplicate content detected by embedding cosine similarity.
type deduplicator struct {
	embedder llm.Embedder // nil disables the semantic pass
	cfg      Config
}

// dedup merges both channels. The exact pass drops keyword items whose id
// already appears in the vector set, so the retained copy keeps the vector
// channel's metadata. The semantic pass embeds all survivors in one batch
// call; if that call fails nothing is removed (fail open).
func (d *deduplicator) dedup(ctx context.Context, vectorItems, keywordItems []ContextItem) []ContextItem {
	logger := contextutil.LoggerFromContext(ctx)

	vectorIDs := make(map[string]struct{}, len(vectorItems))
	for _, item := range vectorItems {
		vectorIDs[item.ID] = struct{}{}
	}

	combined := make([]ContextItem, 0, len(vectorItems)+len(keywordItems))
	combined = append(combined, vectorItems...)
	for _, item := range keywordItems {
		if _, dup := vectorIDs[item.ID]; dup {
			continue
		}
		combined = append(combined, item)
	}

	if d.embedder == nil || len(combined) <= 1 {
		return combined
	}

	texts := make([]string, len(combined))
	for i, item := range combined {
		texts[i] = item.Content
	}

	// One batch call covers every candidate; per-pair embedding would turn
	// the O(n²) comparison into O(n²) network calls.
	vectors, err := d.embedder.EmbedTexts(ctx, texts)
	if err != nil || len(vectors) != len(combined) {
		logger.WarnContext(ctx, "semantic dedup skipped: candidate embedding failed", "error", err)
		return combined
	}

	removed := make([]bool, len(combined))
	for i := 0; i < len(combined); i++ {
		if removed[i] {
			continue
		}
		for j := i + 1; j < len(combined); j++ {
			if removed[j] {
				continue
			}
			if cosineSimilarity(vectors[i], vectors[j]) <= d.cfg.DedupThreshold {
				continue
			}
			// Drop the lower-weight duplicate; on a tie the later item goes.
			wi := sourceWeight(combined[i], d.cfg)
			wj := sourceWeight(combined[j], d.cfg)
			if wi < wj {
				removed[i] = true
				break
			}
			removed[j] = true
		}
	}

	survivors := make([]ContextItem, 0, len(combined))
	for i, item := range combined {
		if !removed[i] {
			survivors = append(survivors, item)
		}
	}

	if dropped := len(combined) - len(survivors); dropped > 0 {
		logger.DebugContext(ctx, "semantic dedup removed near-duplicates", "dropped", dropped)
	}
	return survivors
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched or zero-magnitude vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
