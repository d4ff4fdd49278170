package main

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/stepanukha/Weather-App/internal/advisor"
	httpapi "github.com/stepanukha/Weather-App/internal/api/http"
	"github.com/stepanukha/Weather-App/internal/config"
	"github.com/stepanukha/Weather-App/internal/scheduler"
	"github.com/stepanukha/Weather-App/internal/store"
)

// serve runs the API and the briefing scheduler until ctx is canceled.
func serve(ctx context.Context, cfg *config.AppConfig, svc *advisor.Service, logger *zap.Logger) error {
	// In-memory briefing store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	sched := scheduler.New(cfg.Briefings, cfg.BriefingCron, cfg.BriefingInterval, svc, memStore, logger)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	app := newApp(svc, memStore, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("port", cfg.Port))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newApp(svc httpapi.Advisor, reports httpapi.Reports, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weather-app",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-app",
		})
	})

	httpapi.RegisterRoutes(app, svc, reports, logger)
	return app
}
