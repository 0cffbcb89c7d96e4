package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenMeteoGeocoderSearch(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"name":     q.Get("name"),
			"count":    q.Get("count"),
			"language": q.Get("language"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"name":"Москва","latitude":55.75222,"longitude":37.61556},
			{"name":"Московский","latitude":55.59911,"longitude":37.35495}
		]}`))
	}))
	defer srv.Close()

	g := NewOpenMeteoGeocoder(srv.Client(), srv.URL)
	cands, err := g.Search(context.Background(), "Моск")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if gotQuery["name"] != "Моск" || gotQuery["count"] != "5" || gotQuery["language"] != "ru" {
		t.Fatalf("unexpected query parameters: %v", gotQuery)
	}
	if len(cands) != 2 {
		t.Fatalf("got %d candidates, want 2", len(cands))
	}
	if cands[0].Name != "Москва" || cands[0].Lat != 55.75222 || cands[0].Lon != 37.61556 {
		t.Fatalf("unexpected first candidate: %+v", cands[0])
	}
}

func TestOpenMeteoGeocoderNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Open-Meteo omits the results field entirely on no matches.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"generationtime_ms":0.5}`))
	}))
	defer srv.Close()

	g := NewOpenMeteoGeocoder(srv.Client(), srv.URL)
	_, err := g.Search(context.Background(), "Глухомань")
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestOpenMeteoGeocoderCapsAtFive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"name":"a"},{"name":"b"},{"name":"c"},
			{"name":"d"},{"name":"e"},{"name":"f"},{"name":"g"}
		]}`))
	}))
	defer srv.Close()

	g := NewOpenMeteoGeocoder(srv.Client(), srv.URL)
	cands, err := g.Search(context.Background(), "a")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(cands) != MaxSuggestions {
		t.Fatalf("got %d candidates, want %d", len(cands), MaxSuggestions)
	}
}

func TestIPGeolocator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","lat":55.7558,"lon":37.6173,"city":"Moscow"}`))
	}))
	defer srv.Close()

	g := NewIPGeolocator(srv.Client(), srv.URL)
	loc, err := g.Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if loc.Name != CurrentLocationName {
		t.Fatalf("Name = %q, want the fixed current-location label", loc.Name)
	}
	if loc.Lat != 55.7558 || loc.Lon != 37.6173 {
		t.Fatalf("unexpected coordinates: %+v", loc)
	}
}

func TestIPGeolocatorFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"fail","message":"private range"}`))
	}))
	defer srv.Close()

	g := NewIPGeolocator(srv.Client(), srv.URL)
	_, err := g.Locate(context.Background())
	if !errors.Is(err, ErrGeolocationUnavailable) {
		t.Fatalf("expected ErrGeolocationUnavailable, got %v", err)
	}
}
