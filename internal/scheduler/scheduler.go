package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/stepanukha/Weather-App/internal/advisor"
	"github.com/stepanukha/Weather-App/internal/config"
)

const defaultInterval = time.Hour

// Advisor builds recommendations; *advisor.Service satisfies it.
type Advisor interface {
	Advise(ctx context.Context, req advisor.Request) (advisor.Report, error)
}

// ReportSaver keeps finished briefings; *store.MemoryStore satisfies it.
type ReportSaver interface {
	Save(place string, report advisor.Report)
}

// Scheduler periodically builds briefings for configured places.
type Scheduler struct {
	scheduler *gocron.Scheduler
	advisor   Advisor
	store     ReportSaver
	places    []config.Place
	cron      string
	interval  time.Duration
	timeout   time.Duration
	logger    *zap.Logger
}

// New creates a new Scheduler. A non-empty cronExpr wins over interval.
func New(places []config.Place, cronExpr string, interval time.Duration, adv Advisor, store ReportSaver, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		advisor:   adv,
		store:     store,
		places:    places,
		cron:      cronExpr,
		interval:  interval,
		timeout:   30 * time.Second,
		logger:    logger.Named("scheduler"),
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.places) == 0 {
		s.logger.Info("no briefing places configured; nothing to schedule")
		return nil
	}

	var job *gocron.Scheduler
	if s.cron != "" {
		job = s.scheduler.Cron(s.cron)
	} else {
		job = s.scheduler.Every(s.every())
	}

	if _, err := job.SingletonMode().Do(s.RunOnce); err != nil {
		return err
	}

	s.logger.Info("briefing scheduler started",
		zap.Int("places", len(s.places)),
		zap.String("cron", s.cron),
		zap.Duration("interval", s.interval))
	s.scheduler.StartAsync()
	return nil
}

// every is the briefing period used when no cron expression is set.
func (s *Scheduler) every() time.Duration {
	if s.interval <= 0 {
		return defaultInterval
	}
	return s.interval
}

// RunOnce builds one briefing per place concurrently. Failed places are
// logged and keep their previous report.
func (s *Scheduler) RunOnce() {
	s.logger.Info("running briefing job")

	var wg sync.WaitGroup
	for _, place := range s.places {
		place := place
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()

			report, err := s.advisor.Advise(ctx, place.Request())
			if err != nil {
				s.logger.Warn("briefing failed", zap.String("place", place.Name), zap.Error(err))
				return
			}
			s.store.Save(place.Name, report)
		}()
	}
	wg.Wait()

	s.logger.Info("completed briefing job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
