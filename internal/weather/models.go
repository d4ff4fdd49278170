package weather

import (
	"fmt"
	"time"
)

// Sample is one hourly observation from the forecast provider.
// Temperature is in °F, precipitation in inches, wind speed in mph.
type Sample struct {
	Time          time.Time `json:"time"`
	Temperature   float64   `json:"temperature"`
	Precipitation float64   `json:"precipitation"`
	WindSpeed     float64   `json:"windspeed"`
}

// HourlySeries is an ordered run of hourly samples, normally 24 of them
// starting at local midnight of the requested day.
type HourlySeries []Sample

// Validate checks that timestamps strictly increase at a fixed interval.
// It is diagnostic only; Aggregate does not require a valid series.
func (s HourlySeries) Validate() error {
	if len(s) < 2 {
		return nil
	}

	step := s[1].Time.Sub(s[0].Time)
	if step <= 0 {
		return fmt.Errorf("sample 1 at %s is not after sample 0 at %s", s[1].Time.Format(time.RFC3339), s[0].Time.Format(time.RFC3339))
	}

	for i := 2; i < len(s); i++ {
		if d := s[i].Time.Sub(s[i-1].Time); d != step {
			return fmt.Errorf("sample %d is %s after its predecessor, expected %s", i, d, step)
		}
	}
	return nil
}

// Summary holds the day-level reductions the outfit rules consume.
type Summary struct {
	AvgTemp   float64 `json:"avg_temp"`
	MaxPrecip float64 `json:"max_precip"`
	MaxWind   float64 `json:"max_wind"`
}
