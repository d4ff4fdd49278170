// Package advisor runs the full recommendation pipeline: location
// resolution, weather fetch, aggregation and outfit rules.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stepanukha/Weather-App/internal/location"
	"github.com/stepanukha/Weather-App/internal/outfit"
	"github.com/stepanukha/Weather-App/internal/weather"
)

// ErrRecommendationUnavailable is matched by every failure after the
// location has been resolved.
var ErrRecommendationUnavailable = errors.New("could not retrieve recommendation")

// ErrInvalidRequest is returned for requests that cannot be served as given.
var ErrInvalidRequest = errors.New("invalid request")

// UnavailableError hides the cause of a failed weather fetch from end users.
// Error() is always the generic message; the cause stays reachable through
// errors.Is and errors.As.
type UnavailableError struct {
	Cause error
}

func (e *UnavailableError) Error() string {
	return ErrRecommendationUnavailable.Error()
}

func (e *UnavailableError) Unwrap() []error {
	return []error{ErrRecommendationUnavailable, e.Cause}
}

// Resolver resolves postal codes; *location.Resolver satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, postalCode, countryCode string) location.Result
}

// Labeler names raw coordinates for display.
type Labeler interface {
	Label(ctx context.Context, lat, lon float64) (string, error)
}

// Request identifies where to build a recommendation for. Coordinates take
// precedence over a postal code; when neither is set the default location
// is used.
type Request struct {
	PostalCode  string
	CountryCode string
	Latitude    *float64
	Longitude   *float64
}

// Report is everything the presentation layer needs.
type Report struct {
	ID             string                `json:"id"`
	Location       location.GeoPoint     `json:"location"`
	Tier           location.Tier         `json:"tier"`
	Summary        weather.Summary       `json:"weather"`
	Recommendation outfit.Recommendation `json:"recommendation"`
	GeneratedAt    time.Time             `json:"generated_at"`
}

// Service orchestrates the pipeline.
type Service struct {
	resolver Resolver
	fetcher  weather.Fetcher
	labeler  Labeler
	fallback location.GeoPoint
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLabeler names coordinate-only requests via reverse geocoding.
func WithLabeler(l Labeler) Option {
	return func(s *Service) {
		s.labeler = l
	}
}

// WithDefaultLocation sets the point used when a request names no location.
func WithDefaultLocation(p location.GeoPoint) Option {
	return func(s *Service) {
		s.fallback = p
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// DefaultLocation is central Philadelphia.
var DefaultLocation = location.GeoPoint{
	Latitude:  39.9523,
	Longitude: -75.1638,
	Name:      "Philadelphia, PA",
	Country:   location.DefaultCountry,
}

// NewService creates a new Service.
func NewService(resolver Resolver, fetcher weather.Fetcher, opts ...Option) *Service {
	s := &Service{
		resolver: resolver,
		fetcher:  fetcher,
		fallback: DefaultLocation,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Advise builds a recommendation for req. Resolution failures return a
// *location.NotFoundError with a user-facing reason; any failure after that
// returns an *UnavailableError. Either way no partial report is returned.
func (s *Service) Advise(ctx context.Context, req Request) (Report, error) {
	point, tier, err := s.locate(ctx, req)
	if err != nil {
		return Report{}, err
	}

	log := s.logger.With(
		zap.String("location", point.Name),
		zap.Float64("lat", point.Latitude),
		zap.Float64("lon", point.Longitude),
		zap.String("tier", string(tier)),
	)

	series, err := s.fetcher.FetchHourly(ctx, point.Latitude, point.Longitude)
	if err != nil {
		log.Error("weather fetch failed", zap.String("provider", s.fetcher.Name()), zap.Error(err))
		return Report{}, &UnavailableError{Cause: err}
	}

	summary, err := weather.Aggregate(series)
	if err != nil {
		log.Error("weather aggregation failed", zap.Int("samples", len(series)), zap.Error(err))
		return Report{}, &UnavailableError{Cause: err}
	}

	rec := outfit.Recommend(summary)
	log.Info("recommendation ready",
		zap.Float64("avg_temp", summary.AvgTemp),
		zap.Float64("max_precip", summary.MaxPrecip),
		zap.Float64("max_wind", summary.MaxWind),
		zap.String("top", rec.Top))

	return Report{
		ID:             uuid.NewString(),
		Location:       point,
		Tier:           tier,
		Summary:        summary,
		Recommendation: rec,
		GeneratedAt:    s.now().UTC(),
	}, nil
}

func (s *Service) locate(ctx context.Context, req Request) (location.GeoPoint, location.Tier, error) {
	switch {
	case req.Latitude != nil && req.Longitude != nil:
		lat, lon := *req.Latitude, *req.Longitude
		if !location.ValidCoordinates(lat, lon) {
			return location.GeoPoint{}, "", fmt.Errorf("%w: coordinates %.4f, %.4f are out of range", ErrInvalidRequest, lat, lon)
		}
		return location.GeoPoint{
			Latitude:  lat,
			Longitude: lon,
			Name:      s.label(ctx, lat, lon),
		}, location.TierCoordinates, nil

	case req.Latitude != nil || req.Longitude != nil:
		return location.GeoPoint{}, "", fmt.Errorf("%w: latitude and longitude must be given together", ErrInvalidRequest)

	case req.PostalCode != "":
		res := s.resolver.Resolve(ctx, req.PostalCode, req.CountryCode)
		if !res.OK() {
			s.logger.Info("location not resolved", zap.String("postal_code", req.PostalCode), zap.String("reason", res.Reason))
			return location.GeoPoint{}, "", res.Err()
		}
		return *res.Point, res.Tier, nil

	default:
		return s.fallback, location.TierCoordinates, nil
	}
}

func (s *Service) label(ctx context.Context, lat, lon float64) string {
	coords := fmt.Sprintf("%.4f, %.4f", lat, lon)
	if s.labeler == nil {
		return coords
	}

	name, err := s.labeler.Label(ctx, lat, lon)
	if err != nil || name == "" {
		s.logger.Debug("could not label coordinates", zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		return coords
	}
	return name
}
