// Package scheduler wires up the cron job that publishes the daily
// applications digest, one event per company that received applications
// the previous UTC day.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"jobmate/jobboard-service/internal/report"
	"jobmate/jobboard-service/internal/store"
)

// Counter reports per-company application counts; *store.Store implements it.
type Counter interface {
	ApplicationCounts(ctx context.Context, from, until time.Time) ([]store.CompanyCount, error)
}

// Publisher is implemented by *events.Publisher.
type Publisher interface {
	DailyApplications(ctx context.Context, c store.CompanyCount, day time.Time)
}

// Observer is implemented by *metrics.Metrics.
type Observer interface {
	ObserveDigest(outcome string)
}

// Scheduler wraps robfig/cron and manages the digest job.
type Scheduler struct {
	cron     *cron.Cron
	counter  Counter
	pub      Publisher
	observer Observer
	log      *zap.Logger
	spec     string
	now      func() time.Time
}

// New creates a Scheduler firing on spec, a standard 5-field cron
// expression evaluated in UTC. observer may be nil.
func New(counter Counter, pub Publisher, observer Observer, spec string, log *zap.Logger) *Scheduler {
	log = log.Named("scheduler")
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLogger{log.Sugar()}),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{log.Sugar()})),
		),
		counter:  counter,
		pub:      pub,
		observer: observer,
		log:      log,
		spec:     spec,
		now:      time.Now,
	}
}

// Start registers the job and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.RunDigest(ctx); err != nil {
			s.log.Error("digest failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.Info("cron started", zap.String("spec", s.spec))
	return nil
}

// Stop halts the scheduler and waits for a running digest to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("cron stopped")
}

// RunDigest publishes yesterday's per-company application counts.
func (s *Scheduler) RunDigest(ctx context.Context) error {
	day := report.StartOfDay(s.now()).AddDate(0, 0, -1)
	from, until := report.DayWindow(day)

	counts, err := s.counter.ApplicationCounts(ctx, from, until)
	if err != nil {
		s.observe("error")
		return fmt.Errorf("application counts: %w", err)
	}

	for _, c := range counts {
		s.pub.DailyApplications(ctx, c, day)
	}
	s.observe("ok")
	s.log.Info("digest published",
		zap.String("date", day.Format(time.DateOnly)),
		zap.Int("companies", len(counts)),
	)
	return nil
}

func (s *Scheduler) observe(outcome string) {
	if s.observer != nil {
		s.observer.ObserveDigest(outcome)
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct{ s *zap.SugaredLogger }

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
