package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"weather-widget/internal/httpx"
	"weather-widget/internal/locations"
)

// MaxSuggestions is the cap on geocoding candidates shown to the user.
const MaxSuggestions = 5

// language is fixed: the widget's surface is Russian throughout.
const language = "ru"

// ErrNoMatch is returned when the geocoding service reports no results
// for a query. Distinct from transport failures, which come back as
// wrapped errors from the HTTP layer.
var ErrNoMatch = errors.New("no geocoding matches")

// Geocoder resolves a free-text place name into candidate locations.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]locations.Location, error)
}

// OpenMeteoGeocoder implements Geocoder against the Open-Meteo
// geocoding API.
type OpenMeteoGeocoder struct {
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoGeocoder builds a geocoder. baseURL is the service root,
// e.g. "https://geocoding-api.open-meteo.com".
func NewOpenMeteoGeocoder(client *http.Client, baseURL string) *OpenMeteoGeocoder {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "geocoding",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenMeteoGeocoder{
		baseURL: baseURL,
		httpCfg: httpx.ClientConfig{
			Client:  client,
			Backoff: httpx.DefaultBackoff(),
			Limiter: rate.NewLimiter(rate.Limit(2), 5),
		},
		circuit: cb,
	}
}

// Search queries the geocoding service. Returns ErrNoMatch when the
// response carries no results.
func (g *OpenMeteoGeocoder) Search(ctx context.Context, query string) ([]locations.Location, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("name", query)
		values.Set("count", fmt.Sprintf("%d", MaxSuggestions))
		values.Set("language", language)

		u := fmt.Sprintf("%s/v1/search?%s", g.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := httpx.Do(ctx, g.httpCfg, g.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("geocoding request: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("geocoding response: %w", err)
	}

	// An absent results field means "no matches".
	if len(payload.Results) == 0 {
		return nil, ErrNoMatch
	}

	out := make([]locations.Location, 0, len(payload.Results))
	for _, r := range payload.Results {
		out = append(out, locations.Location{
			Name: r.Name,
			Lat:  r.Latitude,
			Lon:  r.Longitude,
		})
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out, nil
}
