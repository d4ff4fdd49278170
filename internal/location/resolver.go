package location

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// maxJitterDeg bounds the random offset applied to prefix approximations.
const maxJitterDeg = 0.05

// Resolver turns postal codes into coordinates by trying, in order, the
// primary geo service, the secondary geo service, the table of known codes
// and finally a regional approximation based on the code's prefix.
// A Resolver is safe for concurrent use.
type Resolver struct {
	primary   PrimaryLookup
	secondary SecondaryLookup
	logger    *zap.Logger

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRand sets the source used to jitter approximate coordinates.
func WithRand(rng *rand.Rand) Option {
	return func(r *Resolver) {
		r.rng = rng
	}
}

// WithLogger sets the logger used for per-tier diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver. Either lookup may be nil, in which case
// that tier is skipped.
func NewResolver(primary PrimaryLookup, secondary SecondaryLookup, opts ...Option) *Resolver {
	r := &Resolver{
		primary:   primary,
		secondary: secondary,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return r
}

// Resolve finds coordinates for postalCode. Only US codes are supported; an
// empty countryCode means US. Resolve never fails outright: lookup errors
// and panics are logged and the next tier is tried, and when every tier is
// exhausted the Result carries a reason instead of a point.
func (r *Resolver) Resolve(ctx context.Context, postalCode, countryCode string) (res Result) {
	country := normalizeCountry(countryCode)
	log := r.logger.With(zap.String("postal_code", postalCode), zap.String("country", country))

	defer func() {
		if p := recover(); p != nil {
			log.Error("location resolution panicked", zap.Any("panic", p))
			res = failure(postalCode)
		}
	}()

	if country != DefaultCountry {
		log.Info("postal code lookup is only supported for US codes")
		return failure(postalCode)
	}

	code := Normalize(postalCode)
	log = log.With(zap.String("normalized", code))

	if r.primary != nil {
		m, ok := r.firstMatch(log, TierPrimary, r.primary.Name(), func() ([]Match, error) {
			return r.primary.LookupPostalCode(ctx, code)
		})
		if ok {
			return success(pointFromMatch(m), TierPrimary)
		}
	}

	if r.secondary != nil {
		m, ok := r.firstMatch(log, TierSecondary, r.secondary.Name(), func() ([]Match, error) {
			return r.secondary.LookupPostalCode(ctx, code, country)
		})
		if ok {
			return success(pointFromMatch(m), TierSecondary)
		}
	}

	if p, ok := knownCodes[code]; ok {
		log.Debug("resolved from known postal codes")
		return success(p, TierLiteral)
	}

	if p, ok := r.approximate(code); ok {
		log.Info("using approximate regional coordinates", zap.Float64("lat", p.Latitude), zap.Float64("lon", p.Longitude))
		return success(p, TierPrefix)
	}

	log.Warn("postal code could not be resolved by any tier")
	return failure(postalCode)
}

// firstMatch runs one lookup tier and returns its first usable match.
// Errors, empty result sets, malformed coordinates and panics all count as
// a miss.
func (r *Resolver) firstMatch(log *zap.Logger, tier Tier, source string, lookup func() ([]Match, error)) (m Match, ok bool) {
	log = log.With(zap.String("tier", string(tier)), zap.String("source", source))

	defer func() {
		if p := recover(); p != nil {
			log.Error("geo lookup panicked", zap.Any("panic", p))
			m, ok = Match{}, false
		}
	}()

	log.Debug("trying geo lookup")
	matches, err := lookup()
	if err != nil {
		log.Warn("geo lookup failed", zap.Error(err))
		return Match{}, false
	}
	if len(matches) == 0 {
		log.Debug("geo lookup returned no matches")
		return Match{}, false
	}

	first := matches[0]
	if !ValidCoordinates(first.Latitude, first.Longitude) {
		log.Warn("geo lookup returned invalid coordinates",
			zap.Float64("lat", first.Latitude), zap.Float64("lon", first.Longitude))
		return Match{}, false
	}

	log.Debug("geo lookup matched", zap.String("name", first.Name))
	return first, true
}

func (r *Resolver) approximate(code string) (GeoPoint, bool) {
	if len(code) < prefixWidth {
		return GeoPoint{}, false
	}
	base, ok := regionalPrefixes[code[:prefixWidth]]
	if !ok {
		return GeoPoint{}, false
	}

	r.mu.Lock()
	dLat := r.jitter()
	dLon := r.jitter()
	r.mu.Unlock()

	return GeoPoint{
		Latitude:  base.Latitude + dLat,
		Longitude: base.Longitude + dLon,
		Name:      fmt.Sprintf("Near %s (approximate location for %s)", base.Name, code),
		Country:   base.Country,
	}, true
}

// jitter returns a uniform offset in [-maxJitterDeg, maxJitterDeg).
func (r *Resolver) jitter() float64 {
	return (r.rng.Float64()*2 - 1) * maxJitterDeg
}

func pointFromMatch(m Match) GeoPoint {
	name := m.Name
	if m.State != "" && m.State != m.Name {
		name = fmt.Sprintf("%s, %s", m.Name, m.State)
	}
	country := m.Country
	if country == "" {
		country = DefaultCountry
	}
	return GeoPoint{
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		Name:      name,
		Country:   country,
	}
}

// ValidCoordinates reports whether lat and lon are finite and within range.
func ValidCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
