package domain

// AspectSentiment is one extracted (aspect, sentiment) pair for a business.
// Records are keyed by business display name: if two places share a name
// their aspect data merges silently. Known fragility, kept as-is.
type AspectSentiment struct {
	Business  string
	Aspect    string
	Sentiment string // open set; usually positive/negative/neutral
}

// AspectSummary is the recomputed-per-run percentage distribution of
// sentiment labels for one (business, aspect) pair. Percentages sum to 100
// whenever Total > 0.
type AspectSummary struct {
	Business string
	Aspect   string
	Total    int
	Percent  map[string]float64 // sentiment label -> share of Total, in %
}
