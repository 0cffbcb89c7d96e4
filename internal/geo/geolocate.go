package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"weather-widget/internal/locations"
)

// CurrentLocationName is the fixed display name for a geolocated entry.
const CurrentLocationName = "Текущее местоположение"

// ErrGeolocationUnavailable is returned when the device position cannot
// be determined. The widget then asks the user to enter a city by hand.
var ErrGeolocationUnavailable = errors.New("geolocation unavailable")

// Geolocator produces a one-shot fix of the current position.
type Geolocator interface {
	Locate(ctx context.Context) (locations.Location, error)
}

// IPGeolocator approximates the device position from the caller's
// public IP via the ip-api.com JSON endpoint.
type IPGeolocator struct {
	baseURL string
	client  *http.Client
}

func NewIPGeolocator(client *http.Client, baseURL string) *IPGeolocator {
	return &IPGeolocator{baseURL: baseURL, client: client}
}

func (g *IPGeolocator) Locate(ctx context.Context) (locations.Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/json", nil)
	if err != nil {
		return locations.Location{}, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return locations.Location{}, fmt.Errorf("%w: %v", ErrGeolocationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return locations.Location{}, fmt.Errorf("%w: status %d", ErrGeolocationUnavailable, resp.StatusCode)
	}

	var payload struct {
		Status string  `json:"status"`
		Lat    float64 `json:"lat"`
		Lon    float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return locations.Location{}, fmt.Errorf("%w: %v", ErrGeolocationUnavailable, err)
	}
	if payload.Status != "success" {
		return locations.Location{}, fmt.Errorf("%w: status %q", ErrGeolocationUnavailable, payload.Status)
	}

	return locations.Location{
		Name: CurrentLocationName,
		Lat:  payload.Lat,
		Lon:  payload.Lon,
	}, nil
}
