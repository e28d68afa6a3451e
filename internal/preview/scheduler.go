package preview

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler wraps gocron for the optional periodic full rebuild in serve
// mode (useful when content references data that changes outside the
// watched tree, e.g. a docs_repo).
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a scheduler that enqueues rebuild requests at the
// given interval.
func NewScheduler(interval time.Duration, rebuild chan<- string) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			slog.Debug("Scheduled rebuild triggered", "interval", interval)
			select {
			case rebuild <- "schedule":
			default: // a rebuild is already queued
			}
		}),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		return nil, fmt.Errorf("create periodic rebuild job: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	slog.Info("Starting rebuild scheduler")
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}
