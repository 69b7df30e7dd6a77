package googlemaps_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"competitor_scout/internal/adapters/googlemaps"
	"competitor_scout/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*googlemaps.Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	cl, err := googlemaps.New(ts.URL, "test-key", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	return cl, ts
}

func TestNew_RequiresKey(t *testing.T) {
	if _, err := googlemaps.New("http://example.com", "", 5); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestClient_Geocode(t *testing.T) {
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geocode/json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("address"); got != "Mumbai CST" {
			t.Errorf("unexpected address %q", got)
		}
		w.Write([]byte(`{"status":"OK","results":[
			{"geometry":{"location":{"lat":18.94,"lng":72.835}}},
			{"geometry":{"location":{"lat":19.0,"lng":73.0}}}
		]}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := cl.Geocode(ctx, "Mumbai CST")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Lat != 18.94 || got[0].Lng != 72.835 {
		t.Fatalf("unexpected first candidate: %+v", got[0])
	}
}

func TestClient_Geocode_ZeroResults(t *testing.T) {
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	})

	got, err := cl.Geocode(context.Background(), "nowhere at all")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no candidates, got %d", len(got))
	}
}

func TestClient_Geocode_RequestDenied(t *testing.T) {
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key"}`))
	})

	_, err := cl.Geocode(context.Background(), "Mumbai CST")
	if !errors.Is(err, googlemaps.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_NearbySearch(t *testing.T) {
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("radius") != "2000" || q.Get("type") != "restaurant" || q.Get("keyword") != "restaurant" {
			t.Errorf("unexpected query: %v", q)
		}
		w.Write([]byte(`{"status":"OK","results":[
			{"place_id":"p1","name":"Cafe One","vicinity":"1 Main St","rating":4.5,"user_ratings_total":120},
			{"place_id":"p2","name":"Cafe Two","vicinity":""}
		]}`))
	})

	got, err := cl.NearbySearch(context.Background(), domain.LatLng{Lat: 18.94, Lng: 72.835}, 2000, "restaurant")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 places, got %d", len(got))
	}
	if got[0].ID != "p1" || got[0].Name != "Cafe One" || got[0].ReviewsCount != 120 {
		t.Fatalf("unexpected place: %+v", got[0])
	}
	if got[0].Rating == nil || *got[0].Rating != 4.5 {
		t.Fatalf("unexpected rating: %+v", got[0].Rating)
	}
	if got[1].Rating != nil {
		t.Fatalf("expected nil rating for unrated place")
	}
	if got[1].Address != "N/A" {
		t.Fatalf("expected N/A address fallback, got %q", got[1].Address)
	}
}

func TestClient_PlaceDetails_TokenPassthrough(t *testing.T) {
	var hits int32
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1:
			if tok := r.URL.Query().Get("pagetoken"); tok != "" {
				t.Errorf("first call must not carry a token, got %q", tok)
			}
			w.Write([]byte(`{"status":"OK","result":{"reviews":[{"text":"great","rating":5}]},"next_page_token":"tok-2"}`))
		default:
			if tok := r.URL.Query().Get("pagetoken"); tok != "tok-2" {
				t.Errorf("expected pagetoken tok-2, got %q", tok)
			}
			w.Write([]byte(`{"status":"OK","result":{"reviews":[{"text":"meh","rating":3}]}}`))
		}
	})

	page1, err := cl.PlaceDetails(context.Background(), "p1", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page1.NextPageToken != "tok-2" || len(page1.Reviews) != 1 {
		t.Fatalf("unexpected first page: %+v", page1)
	}

	page2, err := cl.PlaceDetails(context.Background(), "p1", page1.NextPageToken)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page2.NextPageToken != "" || len(page2.Reviews) != 1 || page2.Reviews[0].Text != "meh" {
		t.Fatalf("unexpected second page: %+v", page2)
	}
}

func TestClient_BadHTTPStatus(t *testing.T) {
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	})
	if _, err := cl.Geocode(context.Background(), "x"); err == nil {
		t.Fatal("expected error on HTTP 500")
	}
}
