// Package scheduler hosts periodic jobs on a gocron v2 scheduler.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/orris-inc/resinfo/internal/shared/goroutine"
	"github.com/orris-inc/resinfo/internal/shared/logger"
)

// PeriodicJob runs Run every Interval, starting immediately. Runs of the
// same job may overlap when one outlasts the interval.
type PeriodicJob struct {
	Name     string
	Interval time.Duration
	// Timeout bounds one run. Zero uses Interval.
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

// SchedulerManager owns one gocron scheduler and the jobs registered on it.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	// ctx is cancelled on Stop so in-flight runs give up.
	ctx    context.Context
	cancel context.CancelFunc

	started   bool
	startedMu sync.RWMutex
}

func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// RegisterPeriodicJob adds job to the scheduler.
func (m *SchedulerManager) RegisterPeriodicJob(job PeriodicJob) error {
	if job.Run == nil {
		return errors.New("scheduler: job has no run function")
	}
	timeout := job.Timeout
	if timeout <= 0 {
		timeout = job.Interval
	}

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(job.Interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(m.ctx, timeout)
			defer cancel()
			m.execute(ctx, job)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithTags("poll", job.Name),
		gocron.WithName(job.Name),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered periodic job", "name", job.Name, "interval", job.Interval)
	return nil
}

func (m *SchedulerManager) execute(ctx context.Context, job PeriodicJob) {
	start := time.Now()
	err := goroutine.Run(job.Name, func() error {
		return job.Run(ctx)
	})
	if err != nil {
		m.logger.Errorw("periodic job failed",
			"name", job.Name,
			"error", err,
			"duration", time.Since(start),
		)
		return
	}
	m.logger.Debugw("periodic job completed", "name", job.Name, "duration", time.Since(start))
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop cancels in-flight runs and waits for them to return.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	m.cancel()
	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
