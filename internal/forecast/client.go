package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"weather-widget/internal/httpx"
)

// Daily carries the raw per-day arrays of an Open-Meteo forecast
// response. All arrays are expected to have the same length.
type Daily struct {
	Time             []string  `json:"time"`
	TemperatureMax   []float64 `json:"temperature_2m_max"`
	TemperatureMin   []float64 `json:"temperature_2m_min"`
	WeatherCode      []int     `json:"weathercode"`
	WindSpeedMax     []float64 `json:"windspeed_10m_max"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
}

// Client abstracts the forecast collaborator.
type Client interface {
	FetchDaily(ctx context.Context, lat, lon float64, start, end string) (Daily, error)
}

// OpenMeteoClient implements Client against the Open-Meteo forecast API.
type OpenMeteoClient struct {
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoClient builds a forecast client. baseURL is the service
// root, e.g. "https://api.open-meteo.com".
func NewOpenMeteoClient(client *http.Client, baseURL string) *OpenMeteoClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo-forecast",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenMeteoClient{
		baseURL: baseURL,
		httpCfg: httpx.ClientConfig{
			Client:  client,
			Backoff: httpx.DefaultBackoff(),
			Limiter: rate.NewLimiter(rate.Limit(2), 5),
		},
		circuit: cb,
	}
}

// FetchDaily requests daily max/min temperature, weather code, max wind
// speed and precipitation sum for [start, end] in the location's own
// timezone.
func (c *OpenMeteoClient) FetchDaily(ctx context.Context, lat, lon float64, start, end string) (Daily, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", lat))
		values.Set("longitude", fmt.Sprintf("%f", lon))
		values.Set("daily", "temperature_2m_max,temperature_2m_min,weathercode,windspeed_10m_max,precipitation_sum")
		values.Set("timezone", "auto")
		values.Set("start_date", start)
		values.Set("end_date", end)

		u := fmt.Sprintf("%s/v1/forecast?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := httpx.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return Daily{}, fmt.Errorf("forecast request: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Daily Daily `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Daily{}, fmt.Errorf("forecast response: %w", err)
	}

	d := payload.Daily
	n := len(d.Time)
	if n == 0 {
		return Daily{}, fmt.Errorf("forecast response: empty daily series")
	}
	if len(d.TemperatureMax) != n || len(d.TemperatureMin) != n ||
		len(d.WeatherCode) != n || len(d.WindSpeedMax) != n || len(d.PrecipitationSum) != n {
		return Daily{}, fmt.Errorf("forecast response: daily arrays have mismatched lengths")
	}

	return d, nil
}
