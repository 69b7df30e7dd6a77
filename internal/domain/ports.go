package domain

import (
	"context"
	"errors"
)

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrNoPlacesFound    = errors.New("no places found")
	ErrNoReviews        = errors.New("no reviews found")
)

// ReviewPage is one page of reviews from the details endpoint. A non-empty
// NextPageToken means more pages exist.
type ReviewPage struct {
	Reviews       []ReviewSnippet
	NextPageToken string
}

// ReviewSnippet is the provider's view of a single review before it is
// attached to its owning Place.
type ReviewSnippet struct {
	Text   string
	Rating *float64
}

type MapsClient interface {
	// Geocode returns all candidates for a free-text location, in provider
	// order. Callers use the first one.
	Geocode(ctx context.Context, query string) ([]LatLng, error)

	// NearbySearch returns the first results page of businesses matching
	// the category within radius meters of loc.
	NearbySearch(ctx context.Context, loc LatLng, radius int, category string) ([]Place, error)

	// PlaceDetails fetches one review page. pageToken is empty on the first
	// call and the previous page's NextPageToken afterwards.
	PlaceDetails(ctx context.Context, placeID, pageToken string) (ReviewPage, error)
}

type AspectAnalyzer interface {
	// AnalyzeReview extracts an aspect -> sentiment mapping from one
	// review's text. A single call, no retries at this layer.
	AnalyzeReview(ctx context.Context, text string) (map[string]string, error)
}
