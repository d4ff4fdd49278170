package weather

import (
	"errors"
	"math"
	"strconv"
)

// ErrEmptySeries is returned when there is nothing to aggregate.
var ErrEmptySeries = errors.New("weather series is empty")

// Aggregate reduces an hourly series into a Summary: the mean temperature
// (1 decimal), the peak precipitation (2 decimals) and the peak wind speed
// (1 decimal). All three reductions are independent of sample order.
func Aggregate(series HourlySeries) (Summary, error) {
	if len(series) == 0 {
		return Summary{}, ErrEmptySeries
	}

	var sumTemp float64
	maxPrecip := math.Inf(-1)
	maxWind := math.Inf(-1)

	for _, s := range series {
		sumTemp += s.Temperature
		maxPrecip = math.Max(maxPrecip, s.Precipitation)
		maxWind = math.Max(maxWind, s.WindSpeed)
	}

	return Summary{
		AvgTemp:   round(sumTemp/float64(len(series)), 1),
		MaxPrecip: round(maxPrecip, 2),
		MaxWind:   round(maxWind, 1),
	}, nil
}

// round rounds the exact binary value of v to places decimals, so 0.105
// (stored just below) becomes 0.1 and exact ties like 70.25 go to even.
func round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}
