package retrieval

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"recall-ai/internal/concepts"
	"recall-ai/internal/contextutil"
	"recall-ai/internal/ner"
)

const (
	maxConceptExpansions    = 15
	conceptSimilarityCutoff = 0.6
	minKeywordLength        = 3
)

// priorityTerms is the domain vocabulary emitted ahead of ordinary tokens:
// emotional, health, social and temporal words that matter most when
// searching personal data. Order is significant.
var priorityTerms = []string{
	// emotional
	"happy", "sad", "angry", "anxious", "stressed", "excited", "worried", "upset", "proud",
	// health
	"doctor", "dentist", "sick", "medication", "appointment", "sleep", "exercise", "pain", "therapy",
	// social
	"friend", "family", "mom", "dad", "partner", "birthday", "wedding", "dinner", "party",
	// temporal
	"today", "yesterday", "tomorrow", "morning", "evening", "night", "weekend", "week", "month",
}

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {}, "by": {},
	"did": {}, "do": {}, "does": {}, "for": {}, "from": {}, "had": {}, "has": {}, "have": {},
	"how": {}, "i": {}, "in": {}, "is": {}, "it": {}, "me": {}, "my": {}, "of": {}, "on": {},
	"or": {}, "tell": {}, "that": {}, "the": {}, "this": {}, "to": {}, "was": {}, "were": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "who": {}, "why": {}, "with": {}, "you": {},
	"your": {}, "about": {}, "any": {}, "all": {},
}

var capitalizedWordPattern = regexp.MustCompile(`[A-Z][a-z]+`)

// KeywordExtractor derives ranked search terms from a raw query using
// stopword filtering, the priority-term vocabulary, entity hints from the
// NER collaborator, and concept expansion. Either collaborator may be nil;
// extraction degrades gracefully without them.
type KeywordExtractor struct {
	entities ner.Extractor
	concepts concepts.Expander
}

// NewKeywordExtractor creates a keyword extractor. Both collaborators are
// optional.
func NewKeywordExtractor(entities ner.Extractor, expander concepts.Expander) *KeywordExtractor {
	return &KeywordExtractor{entities: entities, concepts: expander}
}

// Extract returns an ordered, case-insensitively deduplicated list of
// search terms for the query. Collaborator failures are logged and skipped;
// a query that produces no terms falls back to its capitalized words, then
// to the trimmed query itself.
func (e *KeywordExtractor) Extract(ctx context.Context, query string) []string {
	logger := contextutil.LoggerFromContext(ctx)

	tokens := tokenize(query)
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		tokenSet[token] = struct{}{}
	}

	seen := make(map[string]struct{})
	var terms []string
	add := func(term string) {
		key := strings.ToLower(strings.TrimSpace(term))
		if key == "" {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		terms = append(terms, strings.TrimSpace(term))
	}

	// Priority vocabulary first, in vocabulary order.
	for _, term := range priorityTerms {
		if _, ok := tokenSet[term]; ok {
			add(term)
		}
	}

	// Remaining tokens in query order.
	for _, token := range tokens {
		if _, stop := stopWords[token]; stop {
			continue
		}
		if len(token) < minKeywordLength {
			continue
		}
		add(token)
	}

	// Entity hints from the NER collaborator.
	if e.entities != nil {
		result, err := e.entities.ExtractEntities(ctx, query)
		if err != nil {
			logger.WarnContext(ctx, "entity extraction failed, continuing without hints", "error", err)
		} else {
			for _, mention := range result.Mentions() {
				add(mention)
			}
		}
	}

	if len(terms) == 0 {
		return fallbackTerms(query)
	}

	// Concept expansion over the full term list.
	if e.concepts != nil {
		expansions, err := e.concepts.Expand(ctx, terms, maxConceptExpansions, conceptSimilarityCutoff)
		if err != nil {
			logger.WarnContext(ctx, "concept expansion failed, using unexpanded terms", "error", err)
		} else {
			for _, expansion := range expansions {
				add(expansion)
			}
		}
	}

	return terms
}

// fallbackTerms extracts capitalized words from the raw query, or failing
// that returns the trimmed query as a single term.
func fallbackTerms(query string) []string {
	if caps := capitalizedWordPattern.FindAllString(query, -1); len(caps) > 0 {
		seen := make(map[string]struct{}, len(caps))
		terms := make([]string, 0, len(caps))
		for _, c := range caps {
			key := strings.ToLower(c)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			terms = append(terms, c)
		}
		return terms
	}
	if trimmed := strings.TrimSpace(query); trimmed != "" {
		return []string{trimmed}
	}
	return nil
}

// tokenize lowercases the text and splits it on any non-alphanumeric rune.
func tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}
	return strings.Fields(builder.String())
}
