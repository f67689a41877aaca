// Package ner defines the entity-extraction collaborator used by keyword
// extraction and memory ingestion. Two implementations exist: an HTTP client
// for an external NER service and a local rule-based extractor used when no
// service is configured.
package ner

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_extractor.go -package=mocks recall-ai/internal/ner Extractor

import (
	"context"
	"strings"
)

// Entity is a single recognized entity mention.
type Entity struct {
	Text       string  `json:"text"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Relationship is a subject-predicate-object triple extracted from text.
type Relationship struct {
	Subject    string  `json:"subject"`
	Predicate  string  `json:"predicate"`
	Object     string  `json:"object"`
	Confidence float64 `json:"confidence"`
}

// ExtractionResult is the full output of one extraction call.
type ExtractionResult struct {
	Entities      []Entity       `json:"entities"`
	Relationships []Relationship `json:"relationships"`
	PersonNames   []string       `json:"person_names"`
	NamedObjects  []string       `json:"pet_or_named_objects"`
	Locations     []string       `json:"locations"`
	Organizations []string       `json:"organizations"`
}

// Extractor is the NER collaborator contract.
type Extractor interface {
	ExtractEntities(ctx context.Context, text string) (*ExtractionResult, error)
}

// Mentions flattens the result into a deduplicated list of search terms:
// person names, named objects, organizations, locations, and product
// entities, in that order.
func (r *ExtractionResult) Mentions() []string {
	if r == nil {
		return nil
	}

	seen := make(map[string]bool)
	var mentions []string
	add := func(values []string) {
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			key := strings.ToLower(v)
			if !seen[key] {
				seen[key] = true
				mentions = append(mentions, v)
			}
		}
	}

	add(r.PersonNames)
	add(r.NamedObjects)
	add(r.Organizations)
	add(r.Locations)
	for _, e := range r.Entities {
		if strings.EqualFold(e.Label, "product") {
			add([]string{e.Text})
		}
	}
	return mentions
}
