package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"weather-widget/internal/widget"
)

// Scheduler periodically re-renders all forecast cards so the widget
// stays fresh between manual refreshes.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	controller *widget.Controller
	interval   time.Duration
	timeout    time.Duration
	log        *zap.Logger
}

// New creates a new Scheduler. The timeout bounds one refresh pass; a
// non-positive value falls back to 2 minutes.
func New(controller *widget.Controller, interval, timeout time.Duration, log *zap.Logger) *Scheduler {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler:  s,
		controller: controller,
		interval:   interval,
		timeout:    timeout,
		log:        log,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 30
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		s.log.Info("running scheduled forecast refresh")

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		s.controller.Reload(ctx)
		s.log.Info("completed scheduled forecast refresh")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
