package retrieval

import (
	"math"
	"strings"
	"testing"
	"time"
)

var scoreTestNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestScorer() *scorer {
	return &scorer{cfg: DefaultConfig(), now: func() time.Time { return scoreTestNow }}
}

// midLength pads content into the neutral length band so the length factor
// stays 1.0 unless a test wants otherwise.
func midLength(content string) string {
	if len(content) >= shortContentChars {
		return content
	}
	return content + strings.Repeat(" .", (shortContentChars-len(content))/2+1)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreOne(t *testing.T) {
	tests := []struct {
		name  string
		item  ContextItem
		query string
		want  float64
	}{
		{
			name:  "keyword source base weight",
			item:  ContextItem{Content: midLength("nothing relevant here"), Source: SourceKeyword},
			query: "",
			want:  0.5,
		},
		{
			name: "vector conversation base weight",
			item: ContextItem{
				Content: midLength("nothing relevant here"),
				Source:  SourceVector,
				Meta:    map[string]any{"namespace": "conversations"},
			},
			query: "",
			want:  1.0,
		},
		{
			name: "vector non-conversation base weight",
			item: ContextItem{
				Content: midLength("nothing relevant here"),
				Source:  SourceVector,
				Meta:    map[string]any{"namespace": "notes"},
			},
			query: "",
			want:  0.7,
		},
		{
			name: "half-day-old item gets half the temporal boost",
			item: ContextItem{
				Content:   midLength("nothing relevant here"),
				Source:    SourceKeyword,
				Timestamp: scoreTestNow.Add(-12 * time.Hour),
			},
			query: "",
			want:  0.5 + 0.15,
		},
		{
			name: "day-old item gets no temporal boost",
			item: ContextItem{
				Content:   midLength("nothing relevant here"),
				Source:    SourceKeyword,
				Timestamp: scoreTestNow.Add(-24 * time.Hour),
			},
			query: "",
			want:  0.5,
		},
		{
			name: "future timestamp gets no temporal boost",
			item: ContextItem{
				Content:   midLength("nothing relevant here"),
				Source:    SourceKeyword,
				Timestamp: scoreTestNow.Add(2 * time.Hour),
			},
			query: "",
			want:  0.5,
		},
		{
			name:  "partial keyword match scales the boost",
			item:  ContextItem{Content: midLength("took the dog for a walk"), Source: SourceKeyword},
			query: "dog vet",
			want:  0.5 + 0.1,
		},
		{
			name:  "full keyword match earns the full boost",
			item:  ContextItem{Content: midLength("took the Dog to the VET today"), Source: SourceKeyword},
			query: "dog vet",
			want:  0.5 + 0.2,
		},
		{
			name:  "short content is discounted",
			item:  ContextItem{Content: "ok", Source: SourceKeyword},
			query: "",
			want:  0.5 * 0.7,
		},
		{
			name:  "very long content is discounted",
			item:  ContextItem{Content: strings.Repeat("a", 2001), Source: SourceKeyword},
			query: "",
			want:  0.5 * 0.8,
		},
		{
			name: "boosts compose before the length factor",
			item: ContextItem{
				Content:   "dog vet",
				Source:    SourceVector,
				Timestamp: scoreTestNow.Add(-12 * time.Hour),
				Meta:      map[string]any{"namespace": "conversations"},
			},
			query: "dog vet",
			want:  (1.0 + 0.15 + 0.2) * 0.7,
		},
	}

	s := newTestScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.scoreOne(tt.item, tokenize(tt.query), scoreTestNow)
			if !almostEqual(got, tt.want) {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreSortsDescendingAndKeepsTies(t *testing.T) {
	items := []ContextItem{
		{ID: "low", Content: midLength("one"), Source: SourceKeyword},
		{ID: "tie-first", Content: midLength("two"), Source: SourceVector, Meta: map[string]any{"namespace": "notes"}},
		{ID: "high", Content: midLength("three"), Source: SourceVector, Meta: map[string]any{"namespace": "conversations"}},
		{ID: "tie-second", Content: midLength("four"), Source: SourceVector, Meta: map[string]any{"namespace": "notes"}},
	}

	scored := newTestScorer().score(items, "")

	wantOrder := []string{"high", "tie-first", "tie-second", "low"}
	for i, id := range wantOrder {
		if scored[i].ID != id {
			t.Errorf("scored[%d].ID = %q, want %q", i, scored[i].ID, id)
		}
	}
	for i := 1; i < len(scored); i++ {
		if scored[i].Score > scored[i-1].Score {
			t.Errorf("scores not descending at %d: %v > %v", i, scored[i].Score, scored[i-1].Score)
		}
	}
	// The inputs keep their zero scores.
	for _, item := range items {
		if item.Score != 0 {
			t.Errorf("input item %q was mutated, score = %v", item.ID, item.Score)
		}
	}
}
