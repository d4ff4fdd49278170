package weather

import "context"

// Fetcher abstracts the hourly forecast source (e.g. Open-Meteo).
// Implementations return 24 hourly samples in °F, inches and mph, starting
// at local hour 0 of the current day.
type Fetcher interface {
	Name() string
	FetchHourly(ctx context.Context, lat, lon float64) (HourlySeries, error)
}
