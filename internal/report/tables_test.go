package report_test

import (
	"bytes"
	"strings"
	"testing"

	"competitor_scout/internal/domain"
	"competitor_scout/internal/report"
)

func TestPrintBusinesses(t *testing.T) {
	var buf bytes.Buffer
	report.PrintBusinesses(&buf, []domain.Place{
		{Name: "Cafe One", Address: "1 Main St", Rating: fptr(4.5), ReviewsCount: 120},
		{Name: "Cafe Two", Address: "2 Side St", ReviewsCount: 0},
	})
	out := buf.String()
	for _, want := range []string{"Business", "Reviews_Count", "Cafe One", "4.5", "120", "N/A"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestPrintSummaries(t *testing.T) {
	var buf bytes.Buffer
	sums := report.Summarize([]domain.AspectSentiment{
		rec("Cafe One", "food", "positive"),
		rec("Cafe One", "food", "negative"),
	})
	report.PrintSummaries(&buf, sums)
	out := buf.String()
	for _, want := range []string{"Aspect", "food", "positive", "50.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}
