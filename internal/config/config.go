package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/stepanukha/Weather-App/internal/advisor"
	"github.com/stepanukha/Weather-App/internal/location"
)

type AppConfig struct {
	Port        string
	HTTPTimeout time.Duration

	// Collaborator endpoints; empty means the public default.
	PrimaryGeoURL   string
	SecondaryGeoURL string
	WeatherURL      string

	// GeoRateLimit caps geo lookups per second (0 = unlimited).
	GeoRateLimit float64

	// Optional keys. Without them the matching collaborator is disabled.
	WeatherAPIKey         string
	GoogleGeocodingAPIKey string

	// DefaultLocation is used when a request names no location.
	DefaultLocation location.GeoPoint

	// Places that get a scheduled recommendation.
	Briefings        []Place
	BriefingCron     string        // cron expression; takes precedence over BriefingInterval
	BriefingInterval time.Duration // how often briefings run when no cron is set

	// In-memory briefing retention.
	StoreMaxHistory int           // max number of reports per place (0 = unlimited)
	StoreMaxAge     time.Duration // max age of reports (0 = unlimited)

	LogLevel  string
	LogFormat string
}

// Place is a named location that gets scheduled briefings. Either
// PostalCode or both coordinates must be set.
type Place struct {
	Name        string   `yaml:"name"`
	PostalCode  string   `yaml:"postal_code"`
	CountryCode string   `yaml:"country_code"`
	Latitude    *float64 `yaml:"latitude"`
	Longitude   *float64 `yaml:"longitude"`
}

// Request converts the place into an advisor request.
func (p Place) Request() advisor.Request {
	return advisor.Request{
		PostalCode:  p.PostalCode,
		CountryCode: p.CountryCode,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
	}
}

type fileConfig struct {
	Briefings []Place `yaml:"briefings"`
}

// Load reads configuration from environment with sensible defaults. When
// CONFIG_FILE is set, briefing places are also read from that YAML file.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.PrimaryGeoURL = os.Getenv("PRIMARY_GEO_URL")
	cfg.SecondaryGeoURL = os.Getenv("SECONDARY_GEO_URL")
	cfg.WeatherURL = os.Getenv("WEATHER_URL")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.GoogleGeocodingAPIKey = os.Getenv("GOOGLE_GEOCODING_API_KEY")
	cfg.BriefingCron = os.Getenv("BRIEFING_CRON")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.LogFormat = getenvDefault("LOG_FORMAT", "json")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.BriefingInterval, err = getenvDuration("BRIEFING_INTERVAL", "1h"); err != nil {
		return nil, err
	}
	if cfg.BriefingInterval < time.Minute {
		return nil, fmt.Errorf("invalid BRIEFING_INTERVAL: %s is shorter than 1m", cfg.BriefingInterval)
	}
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "48h"); err != nil {
		return nil, err
	}
	if cfg.GeoRateLimit, err = getenvFloat("GEO_RATE_LIMIT", 1); err != nil {
		return nil, err
	}

	// Store retention: roughly two days of hourly briefings.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 48)

	cfg.DefaultLocation = advisor.DefaultLocation
	if cfg.DefaultLocation.Latitude, err = getenvFloat("DEFAULT_LATITUDE", advisor.DefaultLocation.Latitude); err != nil {
		return nil, err
	}
	if cfg.DefaultLocation.Longitude, err = getenvFloat("DEFAULT_LONGITUDE", advisor.DefaultLocation.Longitude); err != nil {
		return nil, err
	}
	cfg.DefaultLocation.Name = getenvDefault("DEFAULT_LOCATION_NAME", advisor.DefaultLocation.Name)
	if !location.ValidCoordinates(cfg.DefaultLocation.Latitude, cfg.DefaultLocation.Longitude) {
		return nil, fmt.Errorf("invalid DEFAULT_LATITUDE/DEFAULT_LONGITUDE: %.4f, %.4f",
			cfg.DefaultLocation.Latitude, cfg.DefaultLocation.Longitude)
	}

	places, err := parsePlaces(os.Getenv("BRIEFING_PLACES"))
	if err != nil {
		return nil, fmt.Errorf("invalid BRIEFING_PLACES: %w", err)
	}
	cfg.Briefings = places

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		filePlaces, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		cfg.Briefings = append(cfg.Briefings, filePlaces...)
	}

	if err := validatePlaces(cfg.Briefings); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(path string) ([]Place, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return fc.Briefings, nil
}

// parsePlaces reads "name=postal,name=lat:lon" lists.
func parsePlaces(raw string) ([]Place, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var places []Place
	for _, entry := range strings.Split(raw, ",") {
		name, target, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok || name == "" || target == "" {
			return nil, fmt.Errorf("entry %q must look like name=postal or name=lat:lon", entry)
		}

		p := Place{Name: strings.TrimSpace(name)}
		if latStr, lonStr, isCoords := strings.Cut(target, ":"); isCoords {
			lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
			if err != nil {
				return nil, fmt.Errorf("entry %q: invalid latitude: %w", entry, err)
			}
			lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
			if err != nil {
				return nil, fmt.Errorf("entry %q: invalid longitude: %w", entry, err)
			}
			p.Latitude, p.Longitude = &lat, &lon
		} else {
			p.PostalCode = strings.TrimSpace(target)
		}
		places = append(places, p)
	}
	return places, nil
}

func validatePlaces(places []Place) error {
	seen := make(map[string]bool, len(places))
	var errs []error
	for _, p := range places {
		switch {
		case p.Name == "":
			errs = append(errs, errors.New("briefing place without a name"))
		case seen[p.Name]:
			errs = append(errs, fmt.Errorf("briefing place %q is defined twice", p.Name))
		case p.PostalCode == "" && (p.Latitude == nil || p.Longitude == nil):
			errs = append(errs, fmt.Errorf("briefing place %q needs a postal code or both coordinates", p.Name))
		case p.Latitude != nil && p.Longitude != nil && !location.ValidCoordinates(*p.Latitude, *p.Longitude):
			errs = append(errs, fmt.Errorf("briefing place %q has out of range coordinates", p.Name))
		}
		seen[p.Name] = true
	}
	return errors.Join(errs...)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
