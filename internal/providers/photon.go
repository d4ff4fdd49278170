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

const defaultPhotonURL = "https://photon.komoot.io/api/"

// PhotonLookup implements location.PrimaryLookup against a Photon geocoder.
type PhotonLookup struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewPhotonLookup creates the primary postal code lookup. An empty baseURL
// uses the public komoot instance; limiter may be nil.
func NewPhotonLookup(client *http.Client, baseURL string, limiter *rate.Limiter) *PhotonLookup {
	if baseURL == "" {
		baseURL = defaultPhotonURL
	}
	return &PhotonLookup{
		name:    "photon",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff,
			Limiter: limiter,
		},
		circuit: newCircuitBreaker("photon"),
	}
}

func (p *PhotonLookup) Name() string {
	return p.name
}

type photonResponse struct {
	Features []struct {
		Geometry struct {
			// GeoJSON order: [lon, lat].
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Name    string `json:"name"`
			City    string `json:"city"`
			State   string `json:"state"`
			Country string `json:"country"`
		} `json:"properties"`
	} `json:"features"`
}

// LookupPostalCode searches Photon for postcode places matching code.
func (p *PhotonLookup) LookupPostalCode(ctx context.Context, code string) ([]location.Match, error) {
	values := url.Values{}
	values.Set("q", code)
	values.Set("limit", "5")
	values.Set("osm_tag", "place:postcode")

	var payload photonResponse
	if err := getJSON(ctx, p.httpCfg, p.circuit, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), &payload); err != nil {
		return nil, fmt.Errorf("photon lookup for %s: %w", code, err)
	}

	matches := make([]location.Match, 0, len(payload.Features))
	for _, f := range payload.Features {
		if len(f.Geometry.Coordinates) < 2 {
			continue
		}
		name := f.Properties.Name
		if name == "" {
			name = f.Properties.City
		}
		matches = append(matches, location.Match{
			Latitude:  f.Geometry.Coordinates[1],
			Longitude: f.Geometry.Coordinates[0],
			Name:      name,
			State:     f.Properties.State,
			Country:   f.Properties.Country,
		})
	}
	return matches, nil
}

var _ location.PrimaryLookup = (*PhotonLookup)(nil)
