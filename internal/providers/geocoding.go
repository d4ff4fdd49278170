package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/stepanukha/Weather-App/internal/location"
)

const defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

// GeocodingLookup implements location.SecondaryLookup using the Open-Meteo
// geocoding API, which indexes postal codes alongside place names.
type GeocodingLookup struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewGeocodingLookup(client *http.Client, baseURL string, limiter *rate.Limiter) *GeocodingLookup {
	if baseURL == "" {
		baseURL = defaultGeocodingURL
	}
	return &GeocodingLookup{
		name:    "openmeteo-geocoding",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff,
			Limiter: limiter,
		},
		circuit: newCircuitBreaker("openmeteo-geocoding"),
	}
}

func (p *GeocodingLookup) Name() string {
	return p.name
}

type geocodingResponse struct {
	Results []struct {
		Name        string  `json:"name"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		Country     string  `json:"country"`
		CountryCode string  `json:"country_code"`
		Admin1      string  `json:"admin1"`
	} `json:"results"`
}

// LookupPostalCode searches for code within countryCode.
func (p *GeocodingLookup) LookupPostalCode(ctx context.Context, code, countryCode string) ([]location.Match, error) {
	values := url.Values{}
	values.Set("name", code)
	values.Set("count", "5")
	values.Set("language", "en")
	values.Set("format", "json")
	if countryCode != "" {
		values.Set("countryCode", countryCode)
	}

	var payload geocodingResponse
	if err := getJSON(ctx, p.httpCfg, p.circuit, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), &payload); err != nil {
		return nil, fmt.Errorf("geocoding lookup for %s/%s: %w", code, countryCode, err)
	}

	matches := make([]location.Match, 0, len(payload.Results))
	for _, r := range payload.Results {
		matches = append(matches, location.Match{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Name:      r.Name,
			State:     r.Admin1,
			Country:   r.Country,
		})
	}
	return matches, nil
}

var _ location.SecondaryLookup = (*GeocodingLookup)(nil)
