package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/infra"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

const (
	enqueuerLeaseKey     = "migration:enqueuer"
	enqueuerLeaseTimeout = 30 * time.Minute
	enqueuerPageSize     = 25

	observerBatchSize = 50000

	stuckImportTimeout = 24 * time.Hour
	jobIDTTL           = 24 * time.Hour
)

type UseCase struct {
	clients *infra.Clients
	runner  interfaces.TaskRunner

	production bool

	enqueuerDeadline   time.Duration
	advanceWait        time.Duration
	advanceInterval    time.Duration
	advanceTimeout     time.Duration
	statusPollInterval time.Duration
	refreshInterval    time.Duration
	observerParallel   int

	// serializes read-modify-write of batch imports by poll jobs of this process
	batchMu sync.Mutex
}

var _ interfaces.UseCase = (*UseCase)(nil)

type Option func(*UseCase)

// WithProduction turns on the gate of the guard.
func WithProduction(enabled bool) Option {
	return func(x *UseCase) {
		x.production = enabled
	}
}

func WithTaskRunner(runner interfaces.TaskRunner) Option {
	return func(x *UseCase) {
		x.runner = runner
	}
}

func WithEnqueuerDeadline(d time.Duration) Option {
	return func(x *UseCase) {
		x.enqueuerDeadline = d
	}
}

// WithAdvanceStage sets how long a check waits on each waiter, how often it is rescheduled and
// how long a stage may make no progress.
func WithAdvanceStage(wait, interval, timeout time.Duration) Option {
	return func(x *UseCase) {
		x.advanceWait = wait
		x.advanceInterval = interval
		x.advanceTimeout = timeout
	}
}

func WithStatusPollInterval(d time.Duration) Option {
	return func(x *UseCase) {
		x.statusPollInterval = d
	}
}

func WithRefreshInterval(d time.Duration) Option {
	return func(x *UseCase) {
		x.refreshInterval = d
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients:            clients,
		runner:             &detachedRunner{},
		enqueuerDeadline:   250 * time.Second,
		advanceWait:        5 * time.Second,
		advanceInterval:    30 * time.Second,
		advanceTimeout:     2 * time.Hour,
		statusPollInterval: 10 * time.Second,
		refreshInterval:    5 * time.Minute,
		observerParallel:   4,
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}

// detachedRunner runs tasks on their own goroutine. The scheduler replaces it in serve mode so
// that tasks are stopped on shutdown.
type detachedRunner struct{}

func (x *detachedRunner) After(ctx context.Context, d time.Duration, name string, fn func(ctx context.Context)) {
	taskCtx := logging.Detach(ctx)
	taskCtx = logging.With(taskCtx, logging.From(ctx).With("task", name))

	go func() {
		if err := logging.Sleep(taskCtx, d); err != nil {
			return
		}
		fn(taskCtx)
	}()
}
