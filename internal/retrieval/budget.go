package retrieval

// Budget constants: every rendered item costs a fixed formatting overhead
// on top of its content, and a truncated boundary item is only worth
// keeping if a meaningful slice of content fits.
const (
	itemOverhead        = 50
	minTruncatedContent = 100
	truncationMarker    = "..."
)

// selectWithinBudget greedily fills the character budget in score order.
// When an item no longer fits verbatim, at most one truncated copy of that
// boundary item is admitted, and nothing after it is considered. This is a
// deliberate greedy-by-score policy, not bin packing: a later, smaller item
// that might still fit is discarded along with everything below it.
func selectWithinBudget(items []ContextItem, maxContextLength int) []ContextItem {
	selected := make([]ContextItem, 0, len(items))
	used := 0

	for _, item := range items {
		cost := len(item.Content) + itemOverhead
		if used+cost <= maxContextLength {
			selected = append(selected, item)
			used += cost
			continue
		}

		if room := maxContextLength - used - itemOverhead; room > minTruncatedContent {
			truncated := item
			truncated.Content = item.Content[:room-len(truncationMarker)] + truncationMarker
			selected = append(selected, truncated)
		}
		break
	}

	return selected
}
