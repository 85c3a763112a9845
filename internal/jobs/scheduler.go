// Package jobs runs periodic maintenance, such as year backfills, on a
// cron schedule.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

type Job interface {
	Name() string
	Schedule() string
	Run(ctx context.Context) error
}

// Scheduler runs registered jobs on their cron schedules. A tick that fires
// while the previous run of the same job is still going is skipped.
type Scheduler struct {
	mu     sync.Mutex
	cron   *cron.Cron
	jobs   []Job
	locks  map[string]*sync.Mutex
	logger *slog.Logger
	cancel context.CancelFunc
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		locks:  make(map[string]*sync.Mutex),
		logger: logger,
	}
}

// Register adds a job. Jobs must be registered before Start.
func (s *Scheduler) Register(j Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.locks[j.Name()]; exists {
		return fmt.Errorf("duplicate job name %q", j.Name())
	}
	s.locks[j.Name()] = &sync.Mutex{}
	s.jobs = append(s.jobs, j)
	return nil
}

// Start validates every schedule and starts the cron loop. Standard
// five-field expressions and descriptors such as "@daily" are accepted.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	s.cron = cron.New(cron.WithParser(parser))

	for _, j := range s.jobs {
		if _, err := s.cron.AddFunc(j.Schedule(), s.tick(ctx, j)); err != nil {
			cancel()
			return fmt.Errorf("invalid schedule for job %q: %w", j.Name(), err)
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.jobs))
	return nil
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	if s.cron != nil {
		<-s.cron.Stop().Done()
		s.logger.Info("scheduler stopped")
	}
}

func (s *Scheduler) tick(ctx context.Context, j Job) func() {
	lock := s.locks[j.Name()]
	return func() {
		if !lock.TryLock() {
			s.logger.Warn("job still running, skipping tick", "job", j.Name())
			return
		}
		defer lock.Unlock()

		s.logger.Debug("job started", "job", j.Name())
		if err := j.Run(ctx); err != nil {
			s.logger.Error("job failed", "job", j.Name(), "error", err)
			return
		}
		s.logger.Debug("job completed", "job", j.Name())
	}
}
