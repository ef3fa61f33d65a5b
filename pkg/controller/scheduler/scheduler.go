// Package scheduler runs the migration workers periodically and delayed one-off tasks inside the
// serve process.
package scheduler

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/utils/errutil"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

const (
	EnqueuerInterval     = time.Minute
	GuardInterval        = 10 * time.Minute
	ObserverInterval     = 30 * time.Minute
	StuckImportsInterval = 15 * time.Minute

	defaultJitter = 10 * time.Second
)

// Job is a periodic worker run.
type Job struct {
	Name     types.WorkerName
	Interval time.Duration
	Run      func(ctx context.Context) (*model.WorkerReport, error)
}

// WorkerJobs returns the periodic jobs of all migration workers.
func WorkerJobs(uc interfaces.UseCase) []Job {
	return []Job{
		{Name: types.WorkerEnqueuer, Interval: EnqueuerInterval, Run: uc.RunEnqueuer},
		{Name: types.WorkerGuard, Interval: GuardInterval, Run: uc.RunGuard},
		{Name: types.WorkerObserver, Interval: ObserverInterval, Run: uc.RunObserver},
		{Name: types.WorkerStuckImports, Interval: StuckImportsInterval, Run: uc.RunStuckImportSweep},
	}
}

type Scheduler struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// guards wg.Add against a concurrent Stop
	mu      sync.Mutex
	stopped bool

	base   context.Context
	jitter time.Duration
}

var _ interfaces.TaskRunner = (*Scheduler)(nil)

type Option func(*Scheduler)

// WithJitter sets the maximum random offset applied to every periodic interval.
func WithJitter(d time.Duration) Option {
	return func(x *Scheduler) {
		x.jitter = d
	}
}

// WithBaseContext sets the context that every run inherits logger, clock and sleep from.
func WithBaseContext(ctx context.Context) Option {
	return func(x *Scheduler) {
		x.base = ctx
	}
}

func New(options ...Option) *Scheduler {
	x := &Scheduler{
		base:   context.Background(),
		jitter: defaultJitter,
	}
	for _, opt := range options {
		opt(x)
	}
	x.ctx, x.cancel = context.WithCancel(context.Background())
	return x
}

func (x *Scheduler) nextInterval(interval time.Duration) time.Duration {
	if x.jitter <= 0 {
		return interval
	}
	//nolint:gosec // scheduling jitter does not need a secure source
	offset := time.Duration(rand.Int64N(int64(2*x.jitter))) - x.jitter
	if d := interval + offset; d > 0 {
		return d
	}
	return interval
}

// detach returns a context that is canceled by Stop only. It keeps the values of src and a logger
// of its own.
func (x *Scheduler) detach(src context.Context, attrs ...any) context.Context {
	ctx := logging.InheritContextValues(x.ctx, src)
	reqID, ctx := logging.CtxRequestID(ctx)
	logger := logging.From(src).With(attrs...).With(slog.Any("request_id", reqID))
	return logging.With(ctx, logger)
}

// Start launches a loop per job. Each loop waits one jittered interval before its first run.
func (x *Scheduler) Start(jobs ...Job) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.stopped {
		return
	}
	for _, job := range jobs {
		x.wg.Add(1)
		go x.loop(job)
	}
	logging.From(x.base).Info("scheduler started", slog.Int("jobs", len(jobs)))
}

func (x *Scheduler) loop(job Job) {
	defer x.wg.Done()

	timer := time.NewTimer(x.nextInterval(job.Interval))
	defer timer.Stop()

	for {
		select {
		case <-x.ctx.Done():
			return
		case <-timer.C:
			x.runJob(job)
			timer.Reset(x.nextInterval(job.Interval))
		}
	}
}

func (x *Scheduler) runJob(job Job) {
	ctx := x.detach(x.base, slog.String("worker", string(job.Name)))
	if _, err := job.Run(ctx); err != nil {
		errutil.HandleError(ctx, "worker failed", err)
	}
}

// After runs fn once d has passed, unless the scheduler is stopped first.
func (x *Scheduler) After(ctx context.Context, d time.Duration, name string, fn func(ctx context.Context)) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.stopped {
		logging.From(ctx).Warn("scheduler is stopped, task dropped", slog.String("task", name))
		return
	}

	taskCtx := x.detach(ctx, slog.String("task", name))
	x.wg.Add(1)
	go func() {
		defer x.wg.Done()
		if err := logging.Sleep(taskCtx, d); err != nil {
			return
		}
		if taskCtx.Err() != nil {
			return
		}
		fn(taskCtx)
	}()
}

// Stop cancels running jobs and tasks and waits for them to return.
func (x *Scheduler) Stop() {
	x.mu.Lock()
	x.stopped = true
	x.mu.Unlock()

	x.cancel()
	x.wg.Wait()
	logging.From(x.base).Info("scheduler stopped")
}
