package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/stepanukha/Weather-App/internal/advisor"
	"github.com/stepanukha/Weather-App/internal/config"
	"github.com/stepanukha/Weather-App/internal/location"
	"github.com/stepanukha/Weather-App/internal/logging"
	"github.com/stepanukha/Weather-App/internal/providers"
	"github.com/stepanukha/Weather-App/internal/weather"
)

const usage = `usage: weather-app [serve | once [-zip CODE] [-country CC] [-lat LAT -lon LON]]

  serve   run the HTTP API and the briefing scheduler (default)
  once    print today's summary and outfit for one location
`

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	command, args := "serve", os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command, args = args[0], args[1:]
	}

	svc := newAdvisor(cfg, logger)

	switch command {
	case "serve":
		err = serve(ctx, cfg, svc, logger)
	case "once":
		err = once(ctx, args, cfg.DefaultLocation, svc, os.Stdin, os.Stdout)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		logger.Error("weather-app failed", zap.String("command", command), zap.Error(err))
		if command == "once" && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		}
		_ = logger.Sync()
		stop()
		os.Exit(1)
	}
}

// newAdvisor wires the geo lookups, the forecast providers and the rule
// engine into one service.
func newAdvisor(cfg *config.AppConfig, logger *zap.Logger) *advisor.Service {
	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Both geo services share one budget; public instances ask for ~1 req/s.
	var geoLimiter *rate.Limiter
	if cfg.GeoRateLimit > 0 {
		geoLimiter = rate.NewLimiter(rate.Limit(cfg.GeoRateLimit), 1)
	}

	resolver := location.NewResolver(
		providers.NewPhotonLookup(httpClient, cfg.PrimaryGeoURL, geoLimiter),
		providers.NewGeocodingLookup(httpClient, cfg.SecondaryGeoURL, geoLimiter),
		location.WithLogger(logger),
	)

	fetchers := []weather.Fetcher{providers.NewOpenMeteoProvider(httpClient, cfg.WeatherURL)}
	if cfg.WeatherAPIKey != "" {
		fetchers = append(fetchers, providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey, ""))
	}

	opts := []advisor.Option{
		advisor.WithDefaultLocation(cfg.DefaultLocation),
		advisor.WithLogger(logger),
	}
	if cfg.GoogleGeocodingAPIKey != "" {
		opts = append(opts, advisor.WithLabeler(providers.NewGoogleLabeler(cfg.GoogleGeocodingAPIKey)))
	}

	logger.Info("advisor configured",
		zap.Int("forecast_providers", len(fetchers)),
		zap.Bool("reverse_geocoding", cfg.GoogleGeocodingAPIKey != ""),
		zap.Duration("http_timeout", httpClient.Timeout),
		zap.Time("started", time.Now().UTC()))

	return advisor.NewService(resolver, weather.NewChain(logger, fetchers...), opts...)
}
