package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"competitor_scout/internal/adapters/gemini"
	"competitor_scout/internal/adapters/googlemaps"
	"competitor_scout/internal/adapters/observability"
	"competitor_scout/internal/app"
	"competitor_scout/internal/domain"
	"competitor_scout/internal/report"
	"competitor_scout/internal/shared"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if cfg.MapsKey == "" || cfg.GeminiKey == "" {
		fmt.Fprintln(os.Stderr, "Error: please set GOOGLE_MAPS_API_KEY and GEMINI_API_KEY in environment variables.")
		os.Exit(1)
	}

	observability.Serve(cfg.MetricsAddr)

	in := bufio.NewScanner(os.Stdin)
	location := prompt(in, "Enter city/location (e.g., Mumbai CST): ")
	category := strings.ToLower(prompt(in, "Enter type of business (e.g., restaurant, electronics_store): "))
	if location == "" || category == "" {
		fmt.Fprintln(os.Stderr, "Error: location and business type are required.")
		os.Exit(1)
	}

	maps, err := googlemaps.New(cfg.MapsBase, cfg.MapsKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize maps client")
	}
	analyzer, err := gemini.New(cfg.GeminiBase, cfg.GeminiKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize gemini client")
	}

	disc := app.NewDiscoveryService(maps, cfg.Radius, cfg.PageDelay)
	anal := app.NewAnalysisService(analyzer, cfg.Workers, cfg.RetryDelay)

	if err := run(ctx, cfg, disc, anal, location, category); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg shared.Config, disc *app.DiscoveryService, anal *app.AnalysisService, location, category string) error {
	loc, err := disc.ResolveLocation(ctx, location)
	if err != nil {
		if errors.Is(err, domain.ErrLocationNotFound) {
			return fmt.Errorf("location %q not found", location)
		}
		return err
	}

	places, err := disc.FindBusinesses(ctx, loc, category)
	if err != nil {
		if errors.Is(err, domain.ErrNoPlacesFound) {
			return fmt.Errorf("no places found for %q near %q", category, location)
		}
		return err
	}

	var reviews []domain.Review
	for _, p := range places {
		rs, err := disc.CollectReviews(ctx, p)
		if err != nil {
			return err
		}
		reviews = append(reviews, rs...)
	}

	if err := report.WriteCSV(cfg.CSVPath, places); err != nil {
		return err
	}
	fmt.Println("\n--- Competitor Data ---")
	report.PrintBusinesses(os.Stdout, places)
	fmt.Printf("\nData saved to %s\n", cfg.CSVPath)

	if err := os.MkdirAll(cfg.ChartDir, 0o755); err != nil {
		return err
	}
	scatterPath := filepath.Join(cfg.ChartDir, "quadrant.html")
	title := fmt.Sprintf("Competitor Quadrant: %s near %s", capitalize(category), location)
	if err := report.RenderScatter(scatterPath, places, title); err != nil {
		return err
	}
	log.Info().Str("path", scatterPath).Msg("scatter chart written")

	if len(reviews) == 0 {
		fmt.Println("No reviews found for these businesses.")
		return domain.ErrNoReviews
	}

	fmt.Println("\nRunning Aspect-Based Sentiment Analysis...")
	records := anal.AnalyzeAll(ctx, reviews)
	if len(records) == 0 {
		fmt.Println("No aspect sentiment detected.")
		return nil
	}

	summaries := report.Summarize(records)
	fmt.Println("\n--- Aspect-Based Sentiment (%) ---")
	report.PrintSummaries(os.Stdout, summaries)

	paths, err := report.RenderAspectBars(cfg.ChartDir, summaries)
	if err != nil {
		return err
	}
	for _, p := range paths {
		log.Info().Str("path", p).Msg("aspect chart written")
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}
