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

const defaultWeatherAPIURL = "https://api.weatherapi.com/v1/forecast.json"

// WeatherAPIProvider implements weather.Fetcher for WeatherAPI.com. It is
// used as a fallback behind Open-Meteo when an API key is configured.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client, apiKey, baseURL string) *WeatherAPIProvider {
	if baseURL == "" {
		baseURL = defaultWeatherAPIURL
	}
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff,
		},
		circuit: newCircuitBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

type weatherAPIResponse struct {
	Location struct {
		TzID string `json:"tz_id"`
	} `json:"location"`
	Forecast struct {
		ForecastDay []struct {
			Hour []struct {
				TimeEpoch int64   `json:"time_epoch"`
				TempF     float64 `json:"temp_f"`
				PrecipIn  float64 `json:"precip_in"`
				WindMph   float64 `json:"wind_mph"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// FetchHourly returns today's hourly samples from the first forecast day.
func (p *WeatherAPIProvider) FetchHourly(ctx context.Context, lat, lon float64) (weather.HourlySeries, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("weatherapi api key is not configured")
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	// WeatherAPI uses "q" for location; it accepts "lat,lon".
	values.Set("q", fmt.Sprintf("%f,%f", lat, lon))
	values.Set("days", "1")
	values.Set("aqi", "no")
	values.Set("alerts", "no")

	var payload weatherAPIResponse
	if err := getJSON(ctx, p.httpCfg, p.circuit, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), &payload); err != nil {
		return nil, fmt.Errorf("weatherapi forecast: %w", err)
	}

	if len(payload.Forecast.ForecastDay) == 0 {
		return nil, fmt.Errorf("weatherapi forecast: %w", weather.ErrEmptySeries)
	}

	loc, err := time.LoadLocation(payload.Location.TzID)
	if err != nil {
		loc = time.UTC
	}

	hours := payload.Forecast.ForecastDay[0].Hour
	if len(hours) > hoursPerDay {
		hours = hours[:hoursPerDay]
	}

	series := make(weather.HourlySeries, 0, len(hours))
	for _, h := range hours {
		series = append(series, weather.Sample{
			Time:          time.Unix(h.TimeEpoch, 0).In(loc),
			Temperature:   h.TempF,
			Precipitation: h.PrecipIn,
			WindSpeed:     h.WindMph,
		})
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("weatherapi forecast: %w", weather.ErrEmptySeries)
	}
	return series, nil
}

var _ weather.Fetcher = (*WeatherAPIProvider)(nil)
