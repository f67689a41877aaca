package retrieval

import (
	"context"
	"fmt"
	"strings"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/llm"
)

const (
	summaryItemLimit    = 5
	summaryItemMaxChars = 500
	summaryMaxTokens    = 120
	summaryTemperature  = 0.2
	timestampLayout     = "2006-01-02 15:04"
)

// category is a display grouping derived from an item's source and origin
// namespace, used for group headers and the deterministic summary.
type category int

const (
	categoryConversation category = iota
	categoryTopic
	categoryKeyword
)

// categoryOrder is the fixed source-priority rendering order.
var categoryOrder = []category{categoryConversation, categoryTopic, categoryKeyword}

var categoryHeaders = map[category]string{
	categoryConversation: "Recent conversations",
	categoryTopic:        "Related topics",
	categoryKeyword:      "Keyword matches",
}

var categoryPhrases = map[category]string{
	categoryConversation: "%d recent conversations",
	categoryTopic:        "%d related topics",
	categoryKeyword:      "%d keyword matches",
}

func categoryOf(item ContextItem) category {
	if item.Source == SourceKeyword {
		return categoryKeyword
	}
	if ns, _ := item.Meta["namespace"].(string); ns == conversationNamespace {
		return categoryConversation
	}
	return categoryTopic
}

// formatter renders the final context block and produces its narrative
// summary, via the LLM collaborator when one is configured.
type formatter struct {
	generator llm.Generator // nil forces the deterministic summary
}

// summarize produces the narrative summary for the selected items. Any LLM
// failure, or an empty completion, falls back to the deterministic count
// summary; this never fails.
func (f *formatter) summarize(ctx context.Context, items []ContextItem, query string) string {
	if f.generator == nil || len(items) == 0 {
		return deterministicSummary(items)
	}
	logger := contextutil.LoggerFromContext(ctx)

	queryWords := tokenize(query)
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Query: %s\n\nRetrieved items:\n", query)
	for i, item := range items {
		if i >= summaryItemLimit {
			break
		}
		fmt.Fprintf(&prompt, "%d. %s\n", i+1, truncateForSummary(item.Content, summaryItemMaxChars, queryWords))
	}

	result, err := f.generator.Generate(ctx, []llm.Message{
		{
			Role: "system",
			Content: "You summarize retrieved personal context for an assistant. " +
				"In one or two sentences, describe what the retrieved items cover. " +
				"Mention only information present in the items.",
		},
		{Role: "user", Content: prompt.String()},
	}, llm.ChatParams{
		MaxTokens:   summaryMaxTokens,
		Temperature: summaryTemperature,
	})
	if err != nil {
		logger.WarnContext(ctx, "context summarization failed, using deterministic summary", "error", err)
		return deterministicSummary(items)
	}
	summary := strings.TrimSpace(result.Content)
	if summary == "" {
		return deterministicSummary(items)
	}
	return summary
}

// deterministicSummary counts items per display category and renders the
// fixed phrase pattern.
func deterministicSummary(items []ContextItem) string {
	if len(items) == 0 {
		return "No relevant information found in your personal data."
	}

	counts := make(map[category]int)
	for _, item := range items {
		counts[categoryOf(item)]++
	}

	parts := make([]string, 0, len(counts))
	for _, cat := range categoryOrder {
		if counts[cat] > 0 {
			parts = append(parts, fmt.Sprintf(categoryPhrases[cat], counts[cat]))
		}
	}
	return "Found relevant information from: " + strings.Join(parts, ", ")
}

// render produces the final prompt-context string: the summary header, then
// item groups under per-category headers in fixed priority order.
func render(items []ContextItem, summary string) string {
	if len(items) == 0 {
		return ""
	}

	grouped := make(map[category][]ContextItem)
	for _, item := range items {
		cat := categoryOf(item)
		grouped[cat] = append(grouped[cat], item)
	}

	var b strings.Builder
	b.WriteString("Summary: ")
	b.WriteString(summary)
	b.WriteString("\n")

	for _, cat := range categoryOrder {
		group := grouped[cat]
		if len(group) == 0 {
			continue
		}
		b.WriteString("\n## ")
		b.WriteString(categoryHeaders[cat])
		b.WriteString("\n")
		for _, item := range group {
			b.WriteString("- ")
			if !item.Timestamp.IsZero() {
				fmt.Fprintf(&b, "[%s] ", item.Timestamp.Format(timestampLayout))
			}
			b.WriteString(item.Content)
			b.WriteString("\n")
			if entities, _ := item.Meta["named_entities"].(string); entities != "" {
				fmt.Fprintf(&b, "  Entities: %s\n", strings.Join(strings.Split(entities, "\n"), ", "))
			}
		}
	}

	return b.String()
}

// truncateForSummary bounds one item's contribution to the summary prompt.
// It cuts on sentence boundaries and starts from the first sentence that
// mentions a query term, so the kept window is the one the user asked about.
func truncateForSummary(content string, limit int, queryWords []string) string {
	if len(content) <= limit {
		return content
	}

	sentences := splitSentences(content)
	start := 0
	for i, sentence := range sentences {
		if sentenceMentions(sentence, queryWords) {
			start = i
			break
		}
	}

	var b strings.Builder
	for i := start; i < len(sentences); i++ {
		sentence := sentences[i]
		if b.Len()+len(sentence) > limit {
			break
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(sentence)
	}

	if b.Len() == 0 {
		// No whole sentence fits; fall back to a hard cut.
		return content[:limit-len(truncationMarker)] + truncationMarker
	}
	return b.String()
}

func splitSentences(text string) []string {
	var sentences []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '.' || runes[i] == '!' || runes[i] == '?' {
			end := i + 1
			sentence := strings.TrimSpace(string(runes[start:end]))
			if sentence != "" {
				sentences = append(sentences, sentence)
			}
			start = end
		}
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

func sentenceMentions(sentence string, queryWords []string) bool {
	lowered := strings.ToLower(sentence)
	for _, word := range queryWords {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}
