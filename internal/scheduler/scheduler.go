// Package scheduler drives periodic ingestion cycles.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is the unit of work the scheduler fires. A run receives a context
// cancelled when the scheduler stops.
type Job func(ctx context.Context) error

type Scheduler struct {
	cron    *cron.Cron
	job     Job
	logger  *log.Logger
	running atomic.Bool

	baseCtx context.Context
	cancel  context.CancelFunc
}

// New builds a scheduler firing the job every intervalHours hours.
func New(job Job, intervalHours int, logger *log.Logger) (*Scheduler, error) {
	if job == nil {
		return nil, fmt.Errorf("scheduler: nil job")
	}
	if intervalHours <= 0 {
		intervalHours = 12
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[scheduler] ", log.LstdFlags)
	}

	s := &Scheduler{
		cron:   cron.New(),
		job:    job,
		logger: logger,
	}

	spec := fmt.Sprintf("@every %dh", intervalHours)
	if _, err := s.cron.AddFunc(spec, s.fire); err != nil {
		return nil, fmt.Errorf("scheduler: add %q: %w", spec, err)
	}
	return s, nil
}

// Start launches the cron loop. With runNow set, one cycle fires
// immediately in the background so a fresh deployment does not wait a
// full interval for its first catalog sync.
func (s *Scheduler) Start(ctx context.Context, runNow bool) {
	s.baseCtx, s.cancel = context.WithCancel(ctx)
	s.cron.Start()
	if runNow {
		go s.fire()
	}
}

// Stop halts scheduling and waits for an in-flight run to finish, up to
// the given grace period.
func (s *Scheduler) Stop(grace time.Duration) {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(grace):
		s.logger.Printf("grace period elapsed, abandoning in-flight run")
	}
	if s.cancel != nil {
		s.cancel()
	}
}

// fire runs one cycle. A tick landing while the previous run is still
// going is dropped rather than queued.
func (s *Scheduler) fire() {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Printf("previous run still in progress, skipping tick")
		return
	}
	defer s.running.Store(false)

	ctx := s.baseCtx
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	if err := s.job(ctx); err != nil {
		s.logger.Printf("run failed after %s: %v", time.Since(start).Round(time.Millisecond), err)
		return
	}
	s.logger.Printf("run finished in %s", time.Since(start).Round(time.Millisecond))
}
