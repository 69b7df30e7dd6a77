package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"competitor_scout/internal/domain"
)

// Sentiment series colors; anything outside the expected label set falls
// back to the rotating palette.
var sentimentColors = map[string]string{
	"positive": "#10B981",
	"negative": "#EF4444",
	"neutral":  "#F59E0B",
}

var fallbackColors = []string{
	"#4F46E5", "#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// RenderScatter writes an HTML scatter of review count vs average rating,
// one labeled point per business.
func RenderScatter(path string, places []domain.Place, title string) error {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Number of Reviews", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Average Rating", Type: "value"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	data := make([]opts.ScatterData, 0, len(places))
	for _, p := range places {
		rating := 0.0
		if p.Rating != nil {
			rating = *p.Rating
		}
		data = append(data, opts.ScatterData{
			Name:       p.Name,
			Value:      []interface{}{p.ReviewsCount, rating},
			SymbolSize: 12,
		})
	}
	sc.AddSeries("Businesses", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}", Position: "right"}),
	)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return sc.Render(f)
}

// RenderAspectBars writes one stacked-bar HTML file per business showing
// its aspect/sentiment percentage breakdown. Returns the written paths.
func RenderAspectBars(dir string, summaries []domain.AspectSummary) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	// Summaries arrive sorted by business, so group them in one pass.
	var paths []string
	for i := 0; i < len(summaries); {
		j := i
		for j < len(summaries) && summaries[j].Business == summaries[i].Business {
			j++
		}
		path := filepath.Join(dir, slug(summaries[i].Business)+".html")
		if err := renderBusinessBar(path, summaries[i].Business, summaries[i:j]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
		i = j
	}
	return paths, nil
}

func renderBusinessBar(path, business string, summaries []domain.AspectSummary) error {
	labels := SentimentLabels(summaries)

	aspects := make([]string, 0, len(summaries))
	for _, s := range summaries {
		aspects = append(aspects, s.Aspect)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Aspect-Based Sentiment for %q", business)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Percentage (%)"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(aspects)

	for i, label := range labels {
		data := make([]opts.BarData, 0, len(summaries))
		for _, s := range summaries {
			data = append(data, opts.BarData{Value: s.Percent[label]})
		}
		bar.AddSeries(label, data,
			charts.WithBarChartOpts(opts.BarChart{Stack: "sentiment"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colorFor(label, i)}),
		)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return bar.Render(f)
}

func colorFor(label string, i int) string {
	if c, ok := sentimentColors[strings.ToLower(label)]; ok {
		return c
	}
	return fallbackColors[i%len(fallbackColors)]
}

// slug turns a business name into a safe file stem.
func slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	s := strings.Trim(b.String(), "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	if s == "" {
		s = "business"
	}
	return s
}
