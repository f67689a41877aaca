package concepts

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedExpander wraps an Expander with a bounded LRU cache keyed by the
// full parameter set. Expansion lookups are pure, so cached entries never
// go stale within a process.
type CachedExpander struct {
	inner Expander
	cache *lru.Cache[string, []string]
}

// NewCachedExpander creates a caching decorator around inner with the given
// capacity.
func NewCachedExpander(inner Expander, capacity int) (*CachedExpander, error) {
	cache, err := lru.New[string, []string](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create concept cache: %w", err)
	}
	return &CachedExpander{inner: inner, cache: cache}, nil
}

// Expand returns the cached expansion when available, otherwise delegates.
// Errors are not cached; a failed lookup retries on the next call.
func (c *CachedExpander) Expand(ctx context.Context, concepts []string, maxExpansions int, similarityThreshold float64) ([]string, error) {
	key := cacheKey(concepts, maxExpansions, similarityThreshold)
	if cached, ok := c.cache.Get(key); ok {
		return cached, nil
	}

	expansions, err := c.inner.Expand(ctx, concepts, maxExpansions, similarityThreshold)
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, expansions)
	return expansions, nil
}

func cacheKey(concepts []string, maxExpansions int, similarityThreshold float64) string {
	lowered := make([]string, len(concepts))
	for i, concept := range concepts {
		lowered[i] = strings.ToLower(concept)
	}
	return fmt.Sprintf("%s|%d|%.2f", strings.Join(lowered, ","), maxExpansions, similarityThreshold)
}
