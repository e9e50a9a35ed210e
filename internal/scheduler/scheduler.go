package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Sweeper drops idle entries and reports how many were removed
type Sweeper interface {
	Sweep() int
}

// SweeperFunc adapts a function to Sweeper
type SweeperFunc func() int

// Sweep calls f
func (f SweeperFunc) Sweep() int { return f() }

// Scheduler runs periodic housekeeping tasks
type Scheduler struct {
	scheduler *gocron.Scheduler
	logger    *zap.Logger
}

// New creates a scheduler instance
func New(logger *zap.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		logger:    logger,
	}
}

// Every registers a named sweep to run at the given interval
func (s *Scheduler) Every(name string, interval time.Duration, sweeper Sweeper) error {
	_, err := s.scheduler.Every(interval).WaitForSchedule().Tag(name).Do(func() {
		if removed := sweeper.Sweep(); removed > 0 {
			s.logger.Info("sweep completed", zap.String("task", name), zap.Int("removed", removed))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	return nil
}

// Start begins running all scheduled tasks without blocking
func (s *Scheduler) Start() {
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// Jobs returns the number of registered tasks
func (s *Scheduler) Jobs() int {
	return s.scheduler.Len()
}
