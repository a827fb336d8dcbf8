package scheduler

import (
	"context"
	"sync"
	"time"

	"minerals/backend/pkg/logger"
)

// Job is one unit of periodic work. The context is cancelled when the run
// exceeds the interval or the scheduler stops.
type Job func(ctx context.Context) error

type Scheduler struct {
	name       string
	job        Job
	interval   time.Duration
	stopCh     chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	cancelFunc context.CancelFunc // cancels the run in progress
	mu         sync.Mutex         // protects cancelFunc
}

func New(name string, interval time.Duration, job Job) *Scheduler {
	return &Scheduler{
		name:     name,
		job:      job,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs the job on every tick until Stop is called. The first run
// happens one interval after Start.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	logger.Info("scheduler started", "job", s.name, "interval", s.interval)
}

// Stop cancels a run in progress and waits for the loop to exit. Safe to call
// more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		if s.cancelFunc != nil {
			s.cancelFunc()
		}
		s.mu.Unlock()

		close(s.stopCh)
		s.wg.Wait()
		logger.Info("scheduler stopped", "job", s.name)
	})
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)

	s.mu.Lock()
	s.cancelFunc = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancelFunc = nil
		s.mu.Unlock()
	}()

	if err := s.job(ctx); err != nil {
		if ctx.Err() != nil {
			logger.Info("scheduled job cancelled", "job", s.name)
			return
		}
		logger.Error("scheduled job failed", "job", s.name, "error", err)
		return
	}
	logger.Debug("scheduled job completed", "job", s.name)
}
