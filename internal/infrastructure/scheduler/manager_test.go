package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/resinfo/internal/shared/logger"
)

func newManager(t *testing.T) *SchedulerManager {
	t.Helper()
	m, err := NewSchedulerManager(logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Stop() })
	return m
}

func TestSchedulerManager_RunsImmediately(t *testing.T) {
	m := newManager(t)

	var runs atomic.Int32
	require.NoError(t, m.RegisterPeriodicJob(PeriodicJob{
		Name:     "vnstat",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	}))
	require.Len(t, m.Jobs(), 1)
	assert.Equal(t, "vnstat", m.Jobs()[0].Name())

	m.Start()
	assert.True(t, m.IsStarted())
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())
}

func TestSchedulerManager_Repeats(t *testing.T) {
	m := newManager(t)

	var runs atomic.Int32
	require.NoError(t, m.RegisterPeriodicJob(PeriodicJob{
		Name:     "main",
		Interval: 30 * time.Millisecond,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	}))

	m.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 3 }, 2*time.Second, 10*time.Millisecond)
}

func TestSchedulerManager_FailingAndPanickingJobsKeepRunning(t *testing.T) {
	m := newManager(t)

	var failing, panicking atomic.Int32
	require.NoError(t, m.RegisterPeriodicJob(PeriodicJob{
		Name:     "failing",
		Interval: 30 * time.Millisecond,
		Run: func(context.Context) error {
			failing.Add(1)
			return errors.New("endpoint down")
		},
	}))
	require.NoError(t, m.RegisterPeriodicJob(PeriodicJob{
		Name:     "panicking",
		Interval: 30 * time.Millisecond,
		Run: func(context.Context) error {
			panicking.Add(1)
			panic("boom")
		},
	}))

	m.Start()
	require.Eventually(t, func() bool {
		return failing.Load() >= 2 && panicking.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSchedulerManager_StopCancelsRunningJobs(t *testing.T) {
	m := newManager(t)

	started := make(chan struct{})
	var cancelled atomic.Bool
	require.NoError(t, m.RegisterPeriodicJob(PeriodicJob{
		Name:     "slow",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			cancelled.Store(true)
			return ctx.Err()
		},
	}))

	m.Start()
	<-started
	require.NoError(t, m.Stop())
	assert.True(t, cancelled.Load())
}

func TestSchedulerManager_RegisterRejectsInvalidJobs(t *testing.T) {
	m := newManager(t)

	assert.Error(t, m.RegisterPeriodicJob(PeriodicJob{Name: "no-run", Interval: time.Second}))
	assert.Error(t, m.RegisterPeriodicJob(PeriodicJob{
		Name:     "zero",
		Interval: 0,
		Run:      func(context.Context) error { return nil },
	}))
}
