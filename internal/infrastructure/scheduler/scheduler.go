// Package scheduler runs periodic maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// JobFunc is the body of a scheduled job
type JobFunc func(ctx context.Context) error

// Observer is told about every job run
type Observer interface {
	JobRun(job string, err error)
}

// Scheduler wraps a cron runner whose jobs share a cancellable context
type Scheduler struct {
	cron     *cron.Cron
	logger   logger.Logger
	observer Observer
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	jobs     map[string]JobFunc
	timeout  time.Duration
}

// New creates a stopped Scheduler. observer may be nil.
func New(logger logger.Logger, observer Observer) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	adapter := cronLogger{logger: logger}
	return &Scheduler{
		cron:     cron.New(cron.WithChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter))),
		logger:   logger,
		observer: observer,
		ctx:      ctx,
		cancel:   cancel,
		jobs:     make(map[string]JobFunc),
		timeout:  30 * time.Minute,
	}
}

// Add registers job under name with a standard five-field cron spec or a descriptor like "@daily"
func (s *Scheduler) Add(name, spec string, job JobFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s already registered", name)
	}
	if _, err := s.cron.AddFunc(spec, func() { _ = s.run(name, job) }); err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", spec, name, err)
	}
	s.jobs[name] = job

	s.logger.Info("Scheduled job", "job", name, "schedule", spec)
	return nil
}

// RunNow executes the named job synchronously
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("job %s is not registered", name)
	}
	return s.run(name, job)
}

func (s *Scheduler) run(name string, job JobFunc) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	started := time.Now()
	err := job(ctx)
	if s.observer != nil {
		s.observer.JobRun(name, err)
	}
	if err != nil {
		s.logger.Error("Scheduled job failed", "job", name, "error", err)
		return err
	}

	s.logger.Info("Scheduled job finished", "job", name, "elapsed", time.Since(started).String())
	return nil
}

// Start begins running jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels running jobs and waits for them to return or for ctx to end
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler did not stop in time: %w", ctx.Err())
	}
}

// cronLogger adapts logger.Logger to cron.Logger
type cronLogger struct {
	logger logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(append([]interface{}{msg}, keysAndValues...)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(append([]interface{}{msg, "error", err}, keysAndValues...)...)
}
