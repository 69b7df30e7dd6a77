package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"competitor_scout/internal/domain"
)

// PrintBusinesses writes the business metadata table to w.
func PrintBusinesses(w io.Writer, places []domain.Place) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(Header, "\t"))
	for _, p := range places {
		rating := "N/A"
		if p.Rating != nil {
			rating = strconv.FormatFloat(*p.Rating, 'f', -1, 64)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", p.Name, rating, p.ReviewsCount, p.Address)
	}
	tw.Flush()
}

// PrintSummaries writes the aspect/sentiment percentage cross-tab to w,
// one sentiment label per column.
func PrintSummaries(w io.Writer, summaries []domain.AspectSummary) {
	labels := SentimentLabels(summaries)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	cols := append([]string{"Business", "Aspect"}, labels...)
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
	for _, s := range summaries {
		row := []string{s.Business, s.Aspect}
		for _, l := range labels {
			row = append(row, strconv.FormatFloat(s.Percent[l], 'f', 2, 64))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}
