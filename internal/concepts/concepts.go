// Package concepts defines the concept-expansion collaborator: given a list
// of terms, it returns semantically related terms from an external knowledge
// base. A caching decorator bounds repeat lookups.
package concepts

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_expander.go -package=mocks recall-ai/internal/concepts Expander

import "context"

// Expander is the concept-expansion collaborator contract.
type Expander interface {
	// Expand returns up to maxExpansions related terms for the given
	// concepts, keeping only relations at or above the similarity threshold.
	Expand(ctx context.Context, concepts []string, maxExpansions int, similarityThreshold float64) ([]string, error)
}
