package retrieval

// Embedding-count thresholds separating the three retrieval regimes.
const (
	sqlFavoredBelow = 100
)

// SelectStrategy fixes the per-channel result quotas for one query based on
// how many vectors are currently indexed. Pure function; the regimes are:
//
//	count == 0        → sql_only:    everything to the keyword channel
//	0 < count < 100   → sql_favored: 70% keyword, remainder vector
//	count >= 100      → hybrid:      an even floor(max/2) split each
//
// In hybrid mode an odd remainder goes unused rather than to either channel.
func SelectStrategy(embeddingCount, maxResults int) RetrievalPlan {
	if maxResults < 0 {
		maxResults = 0
	}

	switch {
	case embeddingCount <= 0:
		return RetrievalPlan{
			Mode:           SearchModeSQLOnly,
			KeywordQuota:   maxResults,
			EmbeddingCount: embeddingCount,
		}
	case embeddingCount < sqlFavoredBelow:
		keywordQuota := 7 * maxResults / 10
		return RetrievalPlan{
			Mode:           SearchModeSQLFavored,
			KeywordQuota:   keywordQuota,
			VectorQuota:    maxResults - keywordQuota,
			EmbeddingCount: embeddingCount,
		}
	default:
		half := maxResults / 2
		return RetrievalPlan{
			Mode:           SearchModeHybrid,
			KeywordQuota:   half,
			VectorQuota:    half,
			EmbeddingCount: embeddingCount,
		}
	}
}
