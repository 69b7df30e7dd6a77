package app

import (
	"context"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"competitor_scout/internal/adapters/observability"
	"competitor_scout/internal/domain"
)

// extractAttempts is the total per-review call budget against the language
// model, failures and empty replies included.
const extractAttempts = 3

// AnalysisService runs aspect/sentiment extraction over collected reviews.
// Businesses may be processed in parallel; the reviews of one business stay
// sequential so the per-review retry pacing is preserved.
type AnalysisService struct {
	analyzer   domain.AspectAnalyzer
	workers    int
	retryDelay time.Duration
}

func NewAnalysisService(a domain.AspectAnalyzer, workers int, retryDelay time.Duration) *AnalysisService {
	if workers < 1 {
		workers = 1
	}
	return &AnalysisService{analyzer: a, workers: workers, retryDelay: retryDelay}
}

// AnalyzeAll extracts aspect sentiments for every review. A review whose
// extraction exhausts its retries contributes nothing; no error escapes
// this stage.
func (s *AnalysisService) AnalyzeAll(ctx context.Context, reviews []domain.Review) []domain.AspectSentiment {
	var order []string
	grouped := make(map[string][]domain.Review)
	for _, r := range reviews {
		if _, ok := grouped[r.Business]; !ok {
			order = append(order, r.Business)
		}
		grouped[r.Business] = append(grouped[r.Business], r)
	}

	sem := semaphore.NewWeighted(int64(s.workers))
	var wg sync.WaitGroup
	results := make([][]domain.AspectSentiment, len(order))

	for i, name := range order {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Str("business", name).Msg("analysis aborted")
			break
		}
		wg.Add(1)
		go func(i int, name string, rs []domain.Review) {
			defer wg.Done()
			defer sem.Release(1)

			log.Info().Str("business", name).Int("reviews", len(rs)).Msg("analyzing reviews")
			for _, r := range rs {
				for aspect, sentiment := range s.analyzeOne(ctx, r.Text) {
					results[i] = append(results[i], domain.AspectSentiment{
						Business:  name,
						Aspect:    aspect,
						Sentiment: sentiment,
					})
				}
			}
		}(i, name, grouped[name])
	}
	wg.Wait()

	var out []domain.AspectSentiment
	for _, rs := range results {
		out = append(out, rs...)
	}
	return out
}

// analyzeOne runs the bounded retry loop for a single review and degrades
// to an empty mapping when the budget is spent.
func (s *AnalysisService) analyzeOne(ctx context.Context, text string) map[string]string {
	var aspects map[string]string
	err := retry.Do(
		func() error {
			m, err := s.analyzer.AnalyzeReview(ctx, text)
			if err != nil {
				return err
			}
			aspects = m
			return nil
		},
		retry.Attempts(extractAttempts),
		retry.Delay(s.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			observability.ExtractionRetries.Inc()
			log.Warn().Uint("attempt", n+1).Err(err).Msg("extraction attempt failed")
		}),
	)
	if err != nil {
		observability.ObserveExtraction("failed")
		log.Warn().Err(err).Msg("extraction gave up, recording empty result")
		return map[string]string{}
	}
	if len(aspects) == 0 {
		observability.ObserveExtraction("empty")
	} else {
		observability.ObserveExtraction("ok")
	}
	return aspects
}
