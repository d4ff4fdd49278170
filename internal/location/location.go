// Package location resolves postal codes to coordinates.
package location

import (
	"context"
	"errors"
	"fmt"
)

// ErrLocationNotFound is matched by every resolution failure.
var ErrLocationNotFound = errors.New("location not found")

// GeoPoint is a resolved coordinate with a display name.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
}

// Tier names the strategy that produced a GeoPoint.
type Tier string

const (
	TierPrimary   Tier = "primary"
	TierSecondary Tier = "secondary"
	TierLiteral   Tier = "literal"
	TierPrefix    Tier = "prefix"
	// TierCoordinates marks points supplied directly by the caller.
	TierCoordinates Tier = "coordinates"
)

// Result is the outcome of a resolution. Exactly one of Point and Reason is
// set.
type Result struct {
	Point  *GeoPoint
	Tier   Tier
	Reason string

	input string
}

// OK reports whether the resolution succeeded.
func (r Result) OK() bool {
	return r.Point != nil
}

// Err returns nil on success and a *NotFoundError otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &NotFoundError{Input: r.input, Reason: r.Reason}
}

// NotFoundError carries the user-facing reason a postal code could not be
// resolved.
type NotFoundError struct {
	Input  string
	Reason string
}

func (e *NotFoundError) Error() string {
	return e.Reason
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrLocationNotFound
}

// Match is a single candidate returned by a geo lookup service.
type Match struct {
	Latitude  float64
	Longitude float64
	Name      string
	State     string
	Country   string
}

// PrimaryLookup queries the first-choice geo service by normalized code.
type PrimaryLookup interface {
	Name() string
	LookupPostalCode(ctx context.Context, code string) ([]Match, error)
}

// SecondaryLookup queries the fallback geo service by code and country.
type SecondaryLookup interface {
	Name() string
	LookupPostalCode(ctx context.Context, code, countryCode string) ([]Match, error)
}

func success(p GeoPoint, tier Tier) Result {
	return Result{Point: &p, Tier: tier}
}

func failure(input string) Result {
	return Result{
		Reason: fmt.Sprintf("could not find a location for postal code %q; try entering latitude and longitude instead", input),
		input:  input,
	}
}
