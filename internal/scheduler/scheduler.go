// Package scheduler runs the service's periodic jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/mukizafabrice/Unguka-sub001/internal/config"
	"github.com/mukizafabrice/Unguka-sub001/internal/service"
)

// Open partial payments untouched for this long get a reminder email.
const reminderStaleDays = 14

// Scheduler wires the cron jobs: nightly fee auto-apply and weekly payment
// reminders.
type Scheduler struct {
	cron *cron.Cron
	svc  *service.Service
	log  *logrus.Logger
}

// New creates the scheduler with jobs registered from config.
func New(svc *service.Service, log *logrus.Logger, cfg *config.Config) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(),
		svc:  svc,
		log:  log,
	}

	if _, err := s.cron.AddFunc(cfg.AutoApplySchedule, s.runAutoApply); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc(cfg.ReminderSchedule, s.runReminders); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runAutoApply() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := s.svc.AutoApplyFees(ctx); err != nil {
		s.log.Errorf("Fee auto-apply job failed: %v", err)
	}
}

func (s *Scheduler) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := s.svc.SendPaymentReminders(ctx, reminderStaleDays); err != nil {
		s.log.Errorf("Payment reminder job failed: %v", err)
	}
}
