package app_test

import (
	"context"
	"errors"
	"testing"

	"competitor_scout/internal/app"
	"competitor_scout/internal/domain"
)

// ---- fakes ----

type fakeMaps struct {
	candidates []domain.LatLng
	places     []domain.Place
	pages      map[string][]domain.ReviewPage // placeID -> pages in order
	detailHits map[string]int
	lastTokens []string
}

func (f *fakeMaps) Geocode(ctx context.Context, query string) ([]domain.LatLng, error) {
	return f.candidates, nil
}

func (f *fakeMaps) NearbySearch(ctx context.Context, loc domain.LatLng, radius int, category string) ([]domain.Place, error) {
	return f.places, nil
}

func (f *fakeMaps) PlaceDetails(ctx context.Context, placeID, pageToken string) (domain.ReviewPage, error) {
	if f.detailHits == nil {
		f.detailHits = map[string]int{}
	}
	f.lastTokens = append(f.lastTokens, pageToken)
	n := f.detailHits[placeID]
	f.detailHits[placeID]++
	pages := f.pages[placeID]
	if n >= len(pages) {
		return domain.ReviewPage{}, errors.New("no more pages")
	}
	return pages[n], nil
}

func fptr(v float64) *float64 { return &v }

// ---- tests ----

func TestResolveLocation_FirstCandidateWins(t *testing.T) {
	m := &fakeMaps{candidates: []domain.LatLng{{Lat: 18.94, Lng: 72.835}, {Lat: 40.0, Lng: -70.0}}}
	s := app.NewDiscoveryService(m, 2000, 0)

	loc, err := s.ResolveLocation(context.Background(), "Mumbai CST")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if loc.Lat != 18.94 || loc.Lng != 72.835 {
		t.Fatalf("expected first candidate, got %+v", loc)
	}
}

func TestResolveLocation_NoCandidates(t *testing.T) {
	s := app.NewDiscoveryService(&fakeMaps{}, 2000, 0)
	_, err := s.ResolveLocation(context.Background(), "nowhere")
	if !errors.Is(err, domain.ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestFindBusinesses_Empty(t *testing.T) {
	s := app.NewDiscoveryService(&fakeMaps{}, 2000, 0)
	_, err := s.FindBusinesses(context.Background(), domain.LatLng{}, "restaurant")
	if !errors.Is(err, domain.ErrNoPlacesFound) {
		t.Fatalf("expected ErrNoPlacesFound, got %v", err)
	}
}

func TestCollectReviews_FollowsTokens(t *testing.T) {
	place := domain.Place{ID: "p1", Name: "Cafe One", Address: "1 Main St", Rating: fptr(4.5), ReviewsCount: 7}
	m := &fakeMaps{pages: map[string][]domain.ReviewPage{
		"p1": {
			{Reviews: []domain.ReviewSnippet{{Text: "great", Rating: fptr(5)}, {Text: "fine", Rating: fptr(4)}}, NextPageToken: "tok-2"},
			{Reviews: []domain.ReviewSnippet{{Text: "slow", Rating: fptr(2)}}},
		},
	}}
	s := app.NewDiscoveryService(m, 2000, 0)

	got, err := s.CollectReviews(context.Background(), place)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 reviews across pages, got %d", len(got))
	}
	if m.detailHits["p1"] != 2 {
		t.Fatalf("expected 2 detail calls, got %d", m.detailHits["p1"])
	}
	if m.lastTokens[0] != "" || m.lastTokens[1] != "tok-2" {
		t.Fatalf("unexpected token sequence: %v", m.lastTokens)
	}
	// reviews inherit the owning business's metadata
	for _, r := range got {
		if r.Business != "Cafe One" || r.Address != "1 Main St" || r.ReviewsCount != 7 {
			t.Fatalf("review did not inherit place metadata: %+v", r)
		}
	}
	if got[2].Text != "slow" {
		t.Fatalf("page order lost: %+v", got)
	}
}

func TestCollectReviews_ZeroReviewsSingleCall(t *testing.T) {
	m := &fakeMaps{pages: map[string][]domain.ReviewPage{"p1": {{}}}}
	s := app.NewDiscoveryService(m, 2000, 0)

	got, err := s.CollectReviews(context.Background(), domain.Place{ID: "p1", Name: "Empty"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no reviews, got %d", len(got))
	}
	if m.detailHits["p1"] != 1 {
		t.Fatalf("pagination must stop after one call, got %d", m.detailHits["p1"])
	}
}
