package retrieval

import (
	"sort"
	"strings"
	"time"
)

// Scoring constants. The composite is
// (source weight + temporal boost + keyword boost) * length factor.
const (
	temporalBoostMax   = 0.3
	temporalBoostHours = 24.0
	keywordBoostMax    = 0.2
	shortContentChars  = 50
	longContentChars   = 2000
	shortContentFactor = 0.7
	longContentFactor  = 0.8
)

// scorer assigns composite relevance scores and orders items. It returns
// new records; the inputs are never mutated.
type scorer struct {
	cfg Config
	now func() time.Time
}

// score computes each item's relevance and returns the items sorted by
// descending score. The sort is stable, so ties keep discovery order.
func (s *scorer) score(items []ContextItem, query string) []ContextItem {
	queryWords := tokenize(query)
	now := s.now()

	scored := make([]ContextItem, len(items))
	for i, item := range items {
		scored[i] = item
		scored[i].Score = s.scoreOne(item, queryWords, now)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func (s *scorer) scoreOne(item ContextItem, queryWords []string, now time.Time) float64 {
	base := sourceWeight(item, s.cfg)

	var temporal float64
	if !item.Timestamp.IsZero() {
		ageHours := now.Sub(item.Timestamp).Hours()
		if ageHours >= 0 && ageHours < temporalBoostHours {
			temporal = temporalBoostMax * (1 - ageHours/temporalBoostHours)
		}
	}

	var keyword float64
	if len(queryWords) > 0 {
		content := strings.ToLower(item.Content)
		matched := 0
		for _, word := range queryWords {
			if strings.Contains(content, word) {
				matched++
			}
		}
		keyword = keywordBoostMax * float64(matched) / float64(len(queryWords))
	}

	length := 1.0
	switch {
	case len(item.Content) < shortContentChars:
		length = shortContentFactor
	case len(item.Content) > longContentChars:
		length = longContentFactor
	}

	return (base + temporal + keyword) * length
}
