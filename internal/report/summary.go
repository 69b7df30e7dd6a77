package report

import (
	"sort"

	"competitor_scout/internal/domain"
)

// Summarize cross-tabulates sentiment labels per (business, aspect) pair as
// percentages of the pair's total. Output is sorted by business then aspect
// so tables and charts are stable run to run.
func Summarize(records []domain.AspectSentiment) []domain.AspectSummary {
	type key struct{ business, aspect string }
	counts := make(map[key]map[string]int)
	for _, r := range records {
		k := key{r.Business, r.Aspect}
		if counts[k] == nil {
			counts[k] = make(map[string]int)
		}
		counts[k][r.Sentiment]++
	}

	keys := make([]key, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].business != keys[j].business {
			return keys[i].business < keys[j].business
		}
		return keys[i].aspect < keys[j].aspect
	})

	out := make([]domain.AspectSummary, 0, len(keys))
	for _, k := range keys {
		total := 0
		for _, n := range counts[k] {
			total += n
		}
		pct := make(map[string]float64, len(counts[k]))
		for label, n := range counts[k] {
			pct[label] = float64(n) / float64(total) * 100
		}
		out = append(out, domain.AspectSummary{
			Business: k.business,
			Aspect:   k.aspect,
			Total:    total,
			Percent:  pct,
		})
	}
	return out
}

// SentimentLabels returns the sorted set of sentiment labels seen across
// the given summaries. The label set is open: whatever the extraction
// service produced.
func SentimentLabels(summaries []domain.AspectSummary) []string {
	set := make(map[string]struct{})
	for _, s := range summaries {
		for label := range s.Percent {
			set[label] = struct{}{}
		}
	}
	labels := make([]string, 0, len(set))
	for l := range set {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
