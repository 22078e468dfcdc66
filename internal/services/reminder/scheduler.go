package reminder

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// DefaultCronSpec fires the daily sweep at 06:00.
const DefaultCronSpec = "0 6 * * *"

// SchedulerConfig holds the dependencies for the reminder scheduler
type SchedulerConfig struct {
	Service Service

	// CronSpec overrides the daily schedule; empty means DefaultCronSpec
	CronSpec string
}

// Scheduler runs the reminder sweep on a cron schedule.
type Scheduler struct {
	service Service
	spec    string
	cron    *cron.Cron
}

// NewScheduler creates a new reminder scheduler
func NewScheduler(cfg *SchedulerConfig) (*Scheduler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Service == nil {
		return nil, ErrNilService
	}

	spec := cfg.CronSpec
	if spec == "" {
		spec = DefaultCronSpec
	}

	return &Scheduler{
		service: cfg.Service,
		spec:    spec,
		cron:    cron.New(),
	}, nil
}

// Start registers the sweep job and starts the cron loop. Sweep errors are
// logged; the schedule keeps running.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		out, err := s.service.Run(context.Background())
		if err != nil {
			log.Printf("reminder sweep failed: %v", err)
			return
		}
		log.Printf("reminder sweep done: %d due, %d notified, %d marked", out.Reminded, out.Notified, out.Marked)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder sweep: %w", err)
	}

	s.cron.Start()
	log.Printf("reminder scheduler started with spec %q", s.spec)
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Print("reminder scheduler stopped")
}
