package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"
)

var errNoAddress = errors.New("no address for coordinates")

// geocoder keeps its API key in a package variable.
var googleKeyOnce sync.Once

// GoogleLabeler names raw coordinates with Google reverse geocoding.
type GoogleLabeler struct {
	name    string
	reverse func(geocoder.Location) ([]geocoder.Address, error)
}

// NewGoogleLabeler configures the geocoder package with apiKey. Only the
// first key supplied in a process takes effect.
func NewGoogleLabeler(apiKey string) *GoogleLabeler {
	googleKeyOnce.Do(func() {
		geocoder.ApiKey = apiKey
	})
	return &GoogleLabeler{
		name:    "google-geocoding",
		reverse: geocoder.GeocodingReverse,
	}
}

func (g *GoogleLabeler) Name() string {
	return g.name
}

// Label returns "City, State" (or the closest thing available) for the
// coordinate.
func (g *GoogleLabeler) Label(ctx context.Context, lat, lon float64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	addresses, err := g.reverse(geocoder.Location{Latitude: lat, Longitude: lon})
	if err != nil {
		return "", fmt.Errorf("reverse geocoding %.4f,%.4f: %w", lat, lon, err)
	}
	if len(addresses) == 0 {
		return "", errNoAddress
	}

	// The first address is usually the most detailed one.
	a := addresses[0]
	parts := make([]string, 0, 2)
	for _, p := range []string{firstNonEmpty(a.City, a.County, a.District), a.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		if a.FormattedAddress != "" {
			return a.FormattedAddress, nil
		}
		return "", errNoAddress
	}
	return strings.Join(parts, ", "), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
