package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Chain is a Fetcher that asks each provider in turn and returns the first
// non-empty series.
type Chain struct {
	fetchers []Fetcher
	logger   *zap.Logger
}

// NewChain creates a Chain over fetchers, tried in the given order.
func NewChain(logger *zap.Logger, fetchers ...Fetcher) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{fetchers: fetchers, logger: logger}
}

func (c *Chain) Name() string {
	names := make([]string, len(c.fetchers))
	for i, f := range c.fetchers {
		names[i] = f.Name()
	}
	return "chain(" + strings.Join(names, ",") + ")"
}

// FetchHourly returns the first successful, non-empty series. When every
// provider fails the errors are joined.
func (c *Chain) FetchHourly(ctx context.Context, lat, lon float64) (HourlySeries, error) {
	if len(c.fetchers) == 0 {
		return nil, fmt.Errorf("no weather providers configured")
	}

	var errs []error
	for _, f := range c.fetchers {
		series, err := f.FetchHourly(ctx, lat, lon)
		if err == nil && len(series) == 0 {
			err = ErrEmptySeries
		}
		if err != nil {
			c.logger.Warn("weather provider failed",
				zap.String("provider", f.Name()),
				zap.Float64("lat", lat),
				zap.Float64("lon", lon),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", f.Name(), err))
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if verr := series.Validate(); verr != nil {
			c.logger.Debug("irregular hourly series", zap.String("provider", f.Name()), zap.Error(verr))
		}
		return series, nil
	}

	return nil, errors.Join(errs...)
}

var _ Fetcher = (*Chain)(nil)
