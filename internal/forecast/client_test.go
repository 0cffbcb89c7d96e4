package forecast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenMeteoClientFetchDaily(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"daily":      q.Get("daily"),
			"timezone":   q.Get("timezone"),
			"start_date": q.Get("start_date"),
			"end_date":   q.Get("end_date"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"daily":{
			"time":["2026-08-28","2026-08-29","2026-08-30"],
			"temperature_2m_max":[21.6,18.4,25.5],
			"temperature_2m_min":[12.4,9.6,14.0],
			"weathercode":[0,61,3],
			"windspeed_10m_max":[4.3,0,12.7],
			"precipitation_sum":[0,3.5,0.2]
		}}`))
	}))
	defer srv.Close()

	c := NewOpenMeteoClient(srv.Client(), srv.URL)
	daily, err := c.FetchDaily(context.Background(), 55.75, 37.62, "2026-08-28", "2026-08-30")
	if err != nil {
		t.Fatalf("FetchDaily failed: %v", err)
	}

	wantDaily := "temperature_2m_max,temperature_2m_min,weathercode,windspeed_10m_max,precipitation_sum"
	if gotQuery["daily"] != wantDaily {
		t.Fatalf("daily param = %q, want %q", gotQuery["daily"], wantDaily)
	}
	if gotQuery["timezone"] != "auto" {
		t.Fatalf("timezone = %q, want auto", gotQuery["timezone"])
	}
	if gotQuery["start_date"] != "2026-08-28" || gotQuery["end_date"] != "2026-08-30" {
		t.Fatalf("window params = %v", gotQuery)
	}

	if len(daily.Time) != 3 || daily.WeatherCode[1] != 61 || daily.PrecipitationSum[1] != 3.5 {
		t.Fatalf("unexpected parsed payload: %+v", daily)
	}
}

func TestOpenMeteoClientRejectsMismatchedArrays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"daily":{
			"time":["2026-08-28","2026-08-29"],
			"temperature_2m_max":[21.6],
			"temperature_2m_min":[12.4,9.6],
			"weathercode":[0,61],
			"windspeed_10m_max":[4.3,0],
			"precipitation_sum":[0,3.5]
		}}`))
	}))
	defer srv.Close()

	c := NewOpenMeteoClient(srv.Client(), srv.URL)
	_, err := c.FetchDaily(context.Background(), 0, 0, "2026-08-28", "2026-08-29")
	if err == nil || !strings.Contains(err.Error(), "mismatched") {
		t.Fatalf("expected mismatched-lengths error, got %v", err)
	}
}

func TestOpenMeteoClientRejectsEmptySeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewOpenMeteoClient(srv.Client(), srv.URL)
	if _, err := c.FetchDaily(context.Background(), 0, 0, "2026-08-28", "2026-08-30"); err == nil {
		t.Fatal("expected error for empty daily series")
	}
}
