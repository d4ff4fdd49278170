package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/stepanukha/Weather-App/internal/weather"
)

const (
	defaultOpenMeteoURL = "https://api.open-meteo.com/v1/forecast"

	hoursPerDay = 24
	// Open-Meteo hourly timestamps are local wall-clock time without zone.
	openMeteoTimeLayout = "2006-01-02T15:04"
)

// OpenMeteoProvider implements weather.Fetcher for Open-Meteo. No API key is
// required.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, baseURL string) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = defaultOpenMeteoURL
	}
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff,
		},
		circuit: newCircuitBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

type openMeteoResponse struct {
	Timezone string `json:"timezone"`
	Hourly   struct {
		Time          []string  `json:"time"`
		Temperature   []float64 `json:"temperature_2m"`
		Precipitation []float64 `json:"precipitation"`
		WindSpeed     []float64 `json:"windspeed_10m"`
	} `json:"hourly"`
}

// FetchHourly returns today's 24 hourly samples for the coordinate in °F,
// inches and mph, starting at local midnight.
func (p *OpenMeteoProvider) FetchHourly(ctx context.Context, lat, lon float64) (weather.HourlySeries, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("hourly", "temperature_2m,precipitation,windspeed_10m")
	values.Set("temperature_unit", "fahrenheit")
	values.Set("precipitation_unit", "inch")
	values.Set("windspeed_unit", "mph")
	values.Set("forecast_days", "1")
	values.Set("timezone", "auto")

	var payload openMeteoResponse
	if err := getJSON(ctx, p.httpCfg, p.circuit, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), &payload); err != nil {
		return nil, fmt.Errorf("openmeteo forecast: %w", err)
	}

	h := payload.Hourly
	n := len(h.Time)
	if len(h.Temperature) != n || len(h.Precipitation) != n || len(h.WindSpeed) != n {
		return nil, fmt.Errorf("openmeteo forecast: mismatched hourly arrays (time=%d temperature=%d precipitation=%d windspeed=%d)",
			n, len(h.Temperature), len(h.Precipitation), len(h.WindSpeed))
	}
	if n > hoursPerDay {
		n = hoursPerDay
	}

	loc, err := time.LoadLocation(payload.Timezone)
	if err != nil {
		loc = time.UTC
	}

	series := make(weather.HourlySeries, 0, n)
	for i := 0; i < n; i++ {
		ts, err := time.ParseInLocation(openMeteoTimeLayout, h.Time[i], loc)
		if err != nil {
			return nil, fmt.Errorf("openmeteo forecast: failed to parse hourly time %q: %w", h.Time[i], err)
		}
		series = append(series, weather.Sample{
			Time:          ts,
			Temperature:   h.Temperature[i],
			Precipitation: h.Precipitation[i],
			WindSpeed:     h.WindSpeed[i],
		})
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("openmeteo forecast: %w", weather.ErrEmptySeries)
	}
	return series, nil
}

var _ weather.Fetcher = (*OpenMeteoProvider)(nil)
