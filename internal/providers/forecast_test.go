package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stepanukha/Weather-App/internal/weather"
)

func openMeteoBody(hours int) string {
	times := make([]string, hours)
	temps := make([]string, hours)
	precips := make([]string, hours)
	winds := make([]string, hours)
	for i := 0; i < hours; i++ {
		times[i] = fmt.Sprintf(`"2024-10-18T%02d:00"`, i%24)
		if i >= 24 {
			times[i] = fmt.Sprintf(`"2024-10-19T%02d:00"`, i-24)
		}
		temps[i] = fmt.Sprintf("%d", 50+i)
		precips[i] = "0.0"
		winds[i] = fmt.Sprintf("%d", i)
	}
	precips[3] = "0.12"

	return fmt.Sprintf(`{"latitude":39.95,"longitude":-75.16,"timezone":"America/New_York",
		"hourly":{"time":[%s],"temperature_2m":[%s],"precipitation":[%s],"windspeed_10m":[%s]}}`,
		strings.Join(times, ","), strings.Join(temps, ","), strings.Join(precips, ","), strings.Join(winds, ","))
}

func TestOpenMeteoFetchHourly(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(openMeteoBody(30)))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client(), srv.URL)
	p.httpCfg.Backoff = fastBackoff

	series, err := p.FetchHourly(context.Background(), 39.9523, -75.1638)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(series) != 24 {
		t.Fatalf("expected 24 samples, got %d", len(series))
	}
	if err := series.Validate(); err != nil {
		t.Errorf("expected a regular series: %v", err)
	}

	ny, _ := time.LoadLocation("America/New_York")
	if want := time.Date(2024, 10, 18, 0, 0, 0, 0, ny); !series[0].Time.Equal(want) {
		t.Errorf("first sample at %s, want %s", series[0].Time, want)
	}
	if series[3].Precipitation != 0.12 || series[23].Temperature != 73 || series[23].WindSpeed != 23 {
		t.Errorf("unexpected values: %+v %+v", series[3], series[23])
	}

	for _, param := range []string{"temperature_unit=fahrenheit", "precipitation_unit=inch", "windspeed_unit=mph", "forecast_days=1"} {
		if !strings.Contains(gotQuery, param) {
			t.Errorf("query %q missing %s", gotQuery, param)
		}
	}

	summary, err := weather.Aggregate(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != (weather.Summary{AvgTemp: 61.5, MaxPrecip: 0.12, MaxWind: 23}) {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestOpenMeteoFetchHourlyMismatchedArrays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"timezone":"UTC","hourly":{"time":["2024-10-18T00:00","2024-10-18T01:00"],
			"temperature_2m":[50],"precipitation":[0,0],"windspeed_10m":[1,2]}}`))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client(), srv.URL)
	if _, err := p.FetchHourly(context.Background(), 0, 0); err == nil {
		t.Fatal("expected error for mismatched arrays")
	}
}

func TestOpenMeteoFetchHourlyEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"timezone":"UTC","hourly":{"time":[],"temperature_2m":[],"precipitation":[],"windspeed_10m":[]}}`))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client(), srv.URL)
	if _, err := p.FetchHourly(context.Background(), 0, 0); !errors.Is(err, weather.ErrEmptySeries) {
		t.Fatalf("expected ErrEmptySeries, got %v", err)
	}
}

func TestWeatherAPIFetchHourly(t *testing.T) {
	base := time.Date(2024, 10, 18, 4, 0, 0, 0, time.UTC).Unix()

	var hours []string
	for i := 0; i < 24; i++ {
		hours = append(hours, fmt.Sprintf(`{"time_epoch":%d,"temp_f":%d,"precip_in":0.0,"wind_mph":%d}`, base+int64(i)*3600, 40+i, 10+i))
	}
	body := fmt.Sprintf(`{"location":{"tz_id":"America/New_York"},"forecast":{"forecastday":[{"hour":[%s]}]}}`, strings.Join(hours, ","))

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(body))
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(srv.Client(), "secret", srv.URL)
	p.httpCfg.Backoff = fastBackoff

	series, err := p.FetchHourly(context.Background(), 39.9523, -75.1638)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 24 {
		t.Fatalf("expected 24 samples, got %d", len(series))
	}
	if series[0].Time.Location().String() != "America/New_York" {
		t.Errorf("expected local time, got %s", series[0].Time.Location())
	}
	if series[23].Temperature != 63 || series[23].WindSpeed != 33 {
		t.Errorf("unexpected last sample %+v", series[23])
	}
	if !strings.Contains(gotQuery, "key=secret") || !strings.Contains(gotQuery, "days=1") {
		t.Errorf("unexpected query %q", gotQuery)
	}
}

func TestWeatherAPIRequiresKey(t *testing.T) {
	p := NewWeatherAPIProvider(http.DefaultClient, "", "")
	if _, err := p.FetchHourly(context.Background(), 0, 0); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestWeatherAPINoForecastDays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"location":{"tz_id":"UTC"},"forecast":{"forecastday":[]}}`))
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(srv.Client(), "secret", srv.URL)
	if _, err := p.FetchHourly(context.Background(), 0, 0); !errors.Is(err, weather.ErrEmptySeries) {
		t.Fatalf("expected ErrEmptySeries, got %v", err)
	}
}
