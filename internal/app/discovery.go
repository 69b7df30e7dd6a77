package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"competitor_scout/internal/adapters/observability"
	"competitor_scout/internal/domain"
)

// DiscoveryService resolves a location and discovers nearby businesses and
// their reviews through a MapsClient.
type DiscoveryService struct {
	maps      domain.MapsClient
	radius    int
	pageDelay time.Duration
}

// NewDiscoveryService builds a DiscoveryService. pageDelay is the wait
// before following a continuation token; the provider needs a moment to
// activate a freshly issued token.
func NewDiscoveryService(m domain.MapsClient, radius int, pageDelay time.Duration) *DiscoveryService {
	return &DiscoveryService{maps: m, radius: radius, pageDelay: pageDelay}
}

// ResolveLocation geocodes a free-text location and returns the first
// candidate. No disambiguation: candidate order is the provider's.
func (s *DiscoveryService) ResolveLocation(ctx context.Context, query string) (domain.LatLng, error) {
	cands, err := s.maps.Geocode(ctx, query)
	if err != nil {
		return domain.LatLng{}, err
	}
	if len(cands) == 0 {
		return domain.LatLng{}, domain.ErrLocationNotFound
	}
	loc := cands[0]
	log.Info().Str("query", query).Float64("lat", loc.Lat).Float64("lng", loc.Lng).Msg("location resolved")
	return loc, nil
}

// FindBusinesses returns the first results page of businesses matching the
// category within the configured radius.
func (s *DiscoveryService) FindBusinesses(ctx context.Context, loc domain.LatLng, category string) ([]domain.Place, error) {
	places, err := s.maps.NearbySearch(ctx, loc, s.radius, category)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, domain.ErrNoPlacesFound
	}
	log.Info().Str("category", category).Int("places", len(places)).Msg("businesses discovered")
	return places, nil
}

// CollectReviews walks the details endpoint's continuation tokens and
// accumulates every review page into one flat list. No dedup, no page cap;
// the loop ends when the provider stops returning a token.
func (s *DiscoveryService) CollectReviews(ctx context.Context, p domain.Place) ([]domain.Review, error) {
	var reviews []domain.Review
	token := ""
	for {
		page, err := s.maps.PlaceDetails(ctx, p.ID, token)
		if err != nil {
			return nil, err
		}
		for _, r := range page.Reviews {
			reviews = append(reviews, domain.Review{
				Business:     p.Name,
				Address:      p.Address,
				Text:         r.Text,
				Rating:       r.Rating,
				ReviewsCount: p.ReviewsCount,
			})
		}
		observability.ReviewsCollected.Add(float64(len(page.Reviews)))

		token = page.NextPageToken
		if token == "" {
			break
		}
		if !sleepCtx(ctx, s.pageDelay) {
			return reviews, ctx.Err()
		}
	}
	log.Info().Str("business", p.Name).Int("reviews", len(reviews)).Msg("reviews collected")
	return reviews, nil
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
