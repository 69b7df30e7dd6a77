package googlemaps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"competitor_scout/internal/adapters/observability"
	"competitor_scout/internal/domain"
)

// Client talks to the Google Maps web services: geocoding, nearby search and
// place details. Calls are rate-limited client-side but never retried here;
// a mapping failure aborts the run.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

var (
	ErrUnauthorized  = errors.New("googlemaps: request denied")
	ErrQuotaExceeded = errors.New("googlemaps: query limit exceeded")
)

// envelope covers the shared parts of every Maps web-service response.
// The API reports most errors in-band with HTTP 200 and a non-OK status.
type envelope struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

func (e envelope) err() error {
	switch e.Status {
	case "OK", "ZERO_RESULTS":
		return nil
	case "REQUEST_DENIED":
		return fmt.Errorf("%w: %s", ErrUnauthorized, e.ErrorMessage)
	case "OVER_QUERY_LIMIT":
		return fmt.Errorf("%w: %s", ErrQuotaExceeded, e.ErrorMessage)
	default:
		return fmt.Errorf("googlemaps: status %s: %s", e.Status, e.ErrorMessage)
	}
}

type geocodeResponse struct {
	envelope
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (c *Client) Geocode(ctx context.Context, query string) ([]domain.LatLng, error) {
	q := url.Values{}
	q.Set("address", query)

	var out geocodeResponse
	if err := c.get(ctx, "/geocode/json", q, &out); err != nil {
		return nil, err
	}
	if err := out.err(); err != nil {
		return nil, err
	}
	cands := make([]domain.LatLng, 0, len(out.Results))
	for _, r := range out.Results {
		cands = append(cands, domain.LatLng{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng})
	}
	return cands, nil
}

type nearbyResponse struct {
	envelope
	Results []struct {
		PlaceID          string   `json:"place_id"`
		Name             string   `json:"name"`
		Vicinity         string   `json:"vicinity"`
		Rating           *float64 `json:"rating"`
		UserRatingsTotal int      `json:"user_ratings_total"`
	} `json:"results"`
}

func (c *Client) NearbySearch(ctx context.Context, loc domain.LatLng, radius int, category string) ([]domain.Place, error) {
	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", loc.Lat, loc.Lng))
	q.Set("radius", strconv.Itoa(radius))
	q.Set("type", category)
	q.Set("keyword", category)

	var out nearbyResponse
	if err := c.get(ctx, "/place/nearbysearch/json", q, &out); err != nil {
		return nil, err
	}
	if err := out.err(); err != nil {
		return nil, err
	}
	places := make([]domain.Place, 0, len(out.Results))
	for _, r := range out.Results {
		name, addr := r.Name, r.Vicinity
		if name == "" {
			name = "N/A"
		}
		if addr == "" {
			addr = "N/A"
		}
		places = append(places, domain.Place{
			ID:           r.PlaceID,
			Name:         name,
			Address:      addr,
			Rating:       r.Rating,
			ReviewsCount: r.UserRatingsTotal,
		})
	}
	return places, nil
}

type detailsResponse struct {
	envelope
	Result struct {
		Reviews []struct {
			Text   string   `json:"text"`
			Rating *float64 `json:"rating"`
		} `json:"reviews"`
	} `json:"result"`
	NextPageToken string `json:"next_page_token"`
}

func (c *Client) PlaceDetails(ctx context.Context, placeID, pageToken string) (domain.ReviewPage, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", "reviews")
	if pageToken != "" {
		q.Set("pagetoken", pageToken)
	}

	var out detailsResponse
	if err := c.get(ctx, "/place/details/json", q, &out); err != nil {
		return domain.ReviewPage{}, err
	}
	if err := out.err(); err != nil {
		return domain.ReviewPage{}, err
	}
	page := domain.ReviewPage{NextPageToken: out.NextPageToken}
	for _, r := range out.Result.Reviews {
		page.Reviews = append(page.Reviews, domain.ReviewSnippet{Text: r.Text, Rating: r.Rating})
	}
	return page, nil
}

// get performs one rate-limited GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	q.Set("key", c.key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "competitor-scout/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("maps", path, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("maps", path, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("googlemaps: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
