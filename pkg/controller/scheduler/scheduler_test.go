package scheduler_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/regmig/pkg/controller/scheduler"
	"github.com/m-mizutani/regmig/pkg/domain/mock"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out")
	}
}

func TestAfter(t *testing.T) {
	t.Run("runs task after delay", func(t *testing.T) {
		s := scheduler.New()
		defer s.Stop()

		done := make(chan struct{})
		s.After(context.Background(), 10*time.Millisecond, "test", func(ctx context.Context) {
			close(done)
		})
		waitFor(t, done)
	})

	t.Run("task keeps clock of caller", func(t *testing.T) {
		s := scheduler.New()
		defer s.Stop()

		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		ctx := logging.CtxWithTime(context.Background(), func() time.Time { return now })

		var slept atomic.Int64
		ctx = logging.CtxWithSleep(ctx, func(ctx context.Context, d time.Duration) error {
			slept.Store(int64(d))
			return nil
		})

		got := make(chan time.Time, 1)
		s.After(ctx, time.Hour, "clock", func(ctx context.Context) {
			got <- logging.CtxTime(ctx)
		})

		select {
		case v := <-got:
			gt.V(t, v).Equal(now)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out")
		}
		gt.V(t, time.Duration(slept.Load())).Equal(time.Hour)
	})

	t.Run("task outlives canceled caller", func(t *testing.T) {
		s := scheduler.New()
		defer s.Stop()

		ctx, cancel := context.WithCancel(context.Background())
		release := make(chan struct{})
		done := make(chan error, 1)
		s.After(ctx, 0, "detached", func(ctx context.Context) {
			<-release
			done <- ctx.Err()
		})
		cancel()
		close(release)

		select {
		case err := <-done:
			gt.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out")
		}
	})

	t.Run("stop drops pending task", func(t *testing.T) {
		s := scheduler.New()

		var called atomic.Bool
		s.After(context.Background(), time.Hour, "pending", func(ctx context.Context) {
			called.Store(true)
		})

		stopped := make(chan struct{})
		go func() {
			s.Stop()
			close(stopped)
		}()
		waitFor(t, stopped)
		gt.False(t, called.Load())
	})

	t.Run("task after stop is ignored", func(t *testing.T) {
		s := scheduler.New()
		s.Stop()

		var called atomic.Bool
		s.After(context.Background(), 0, "late", func(ctx context.Context) {
			called.Store(true)
		})
		time.Sleep(20 * time.Millisecond)
		gt.False(t, called.Load())
	})
}

func TestStart(t *testing.T) {
	t.Run("runs job repeatedly", func(t *testing.T) {
		s := scheduler.New(scheduler.WithJitter(0))

		var runs atomic.Int32
		twice := make(chan struct{})
		s.Start(scheduler.Job{
			Name:     types.WorkerObserver,
			Interval: 5 * time.Millisecond,
			Run: func(ctx context.Context) (*model.WorkerReport, error) {
				if runs.Add(1) == 2 {
					close(twice)
				}
				return nil, nil
			},
		})
		waitFor(t, twice)
		s.Stop()
	})

	t.Run("failing job keeps running", func(t *testing.T) {
		s := scheduler.New(scheduler.WithJitter(time.Millisecond))

		var runs atomic.Int32
		twice := make(chan struct{})
		s.Start(scheduler.Job{
			Name:     types.WorkerGuard,
			Interval: 5 * time.Millisecond,
			Run: func(ctx context.Context) (*model.WorkerReport, error) {
				if runs.Add(1) == 2 {
					close(twice)
				}
				return nil, goerr.New("boom")
			},
		})
		waitFor(t, twice)
		s.Stop()
	})

	t.Run("stop ends job loops", func(t *testing.T) {
		s := scheduler.New()

		var runs atomic.Int32
		s.Start(scheduler.Job{
			Name:     types.WorkerEnqueuer,
			Interval: time.Hour,
			Run: func(ctx context.Context) (*model.WorkerReport, error) {
				runs.Add(1)
				return nil, nil
			},
		})
		s.Stop()
		gt.V(t, runs.Load()).Equal(int32(0))
	})
}

func TestWorkerJobs(t *testing.T) {
	report := &model.WorkerReport{}
	uc := &mock.UseCaseMock{
		RunEnqueuerFunc: func(ctx context.Context) (*model.WorkerReport, error) {
			return report, nil
		},
		RunGuardFunc: func(ctx context.Context) (*model.WorkerReport, error) {
			return report, nil
		},
		RunObserverFunc: func(ctx context.Context) (*model.WorkerReport, error) {
			return report, nil
		},
		RunStuckImportSweepFunc: func(ctx context.Context) (*model.WorkerReport, error) {
			return report, nil
		},
	}

	jobs := scheduler.WorkerJobs(uc)
	gt.A(t, jobs).Length(4)

	intervals := map[types.WorkerName]time.Duration{}
	for _, job := range jobs {
		intervals[job.Name] = job.Interval
		got := gt.R1(job.Run(context.Background())).NoError(t)
		gt.V(t, got).Equal(report)
	}

	gt.V(t, intervals[types.WorkerEnqueuer]).Equal(time.Minute)
	gt.V(t, intervals[types.WorkerGuard]).Equal(10 * time.Minute)
	gt.V(t, intervals[types.WorkerObserver]).Equal(30 * time.Minute)
	gt.V(t, intervals[types.WorkerStuckImports]).Equal(15 * time.Minute)

	gt.A(t, uc.RunEnqueuerCalls()).Length(1)
	gt.A(t, uc.RunGuardCalls()).Length(1)
	gt.A(t, uc.RunObserverCalls()).Length(1)
	gt.A(t, uc.RunStuckImportSweepCalls()).Length(1)
}
