package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/domain/mock"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/infra"
	"github.com/m-mizutani/regmig/pkg/infra/jobs"
	"github.com/m-mizutani/regmig/pkg/repository/memory"
	"github.com/m-mizutani/regmig/pkg/usecase"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store    interfaces.RepositoryStore
	registry *mock.RegistryClientMock
	metrics  *mock.MetricsMock
	runner   *mock.TaskRunnerMock
	tracker  *jobs.Tracker
	waiter   *jobs.Waiter
	settings model.MigrationSettings
	flags    map[types.FeatureFlag]bool

	mu     sync.Mutex
	tasks  []func(ctx context.Context)
	sleeps []time.Duration
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	settings := model.DefaultMigrationSettings()
	settings.Enabled = true
	settings.EnqueueWaitingTime = 0

	f := &fixture{
		store:    memory.New(),
		tracker:  jobs.NewTracker(),
		waiter:   jobs.NewWaiter(),
		settings: settings,
		flags:    map[types.FeatureFlag]bool{},
		registry: &mock.RegistryClientMock{
			ImportRepositoryFunc: func(ctx context.Context, path types.RepositoryPath, importType types.ImportType) (types.ImportResponse, error) {
				return types.ImportResponseOK, nil
			},
			ImportStatusFunc: func(ctx context.Context, path types.RepositoryPath) (types.ExternalImportStatus, error) {
				return types.ExternalStatusError, nil
			},
		},
		metrics: &mock.MetricsMock{
			RecordRepositoryCountFunc: func(ctx context.Context, state types.MigrationState, count int64) {},
			AddGuardAbortsFunc:        func(ctx context.Context, n int64) {},
			AddStuckImportJobsFunc:    func(ctx context.Context, kind string, n int64) {},
		},
	}
	f.runner = &mock.TaskRunnerMock{
		AfterFunc: func(ctx context.Context, d time.Duration, name string, fn func(ctx context.Context)) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.tasks = append(f.tasks, fn)
		},
	}
	return f
}

func (f *fixture) clients(options ...infra.Option) *infra.Clients {
	base := []infra.Option{
		infra.WithRepositoryStore(f.store),
		infra.WithRegistry(f.registry),
		infra.WithMetrics(f.metrics),
		infra.WithJobTracker(f.tracker),
		infra.WithJobWaiter(f.waiter),
		infra.WithSettings(&mock.SettingsProviderMock{
			SettingsFunc: func(ctx context.Context) (*model.MigrationSettings, error) {
				s := f.settings
				return &s, nil
			},
		}),
		infra.WithFeatureFlags(&mock.FeatureFlagsMock{
			EnabledFunc: func(ctx context.Context, flag types.FeatureFlag) bool {
				return f.flags[flag]
			},
		}),
	}
	return infra.New(append(base, options...)...)
}

func (f *fixture) usecase(options ...usecase.Option) *usecase.UseCase {
	return usecase.New(f.clients(), append([]usecase.Option{usecase.WithTaskRunner(f.runner)}, options...)...)
}

// ctx fixes the clock at baseTime and records sleeps instead of waiting.
func (f *fixture) ctx() context.Context {
	ctx := logging.CtxWithTime(context.Background(), func() time.Time { return baseTime })
	return logging.CtxWithSleep(ctx, func(ctx context.Context, d time.Duration) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.sleeps = append(f.sleeps, d)
		return nil
	})
}

// drain runs scheduled tasks in order, including the ones they schedule, up to limit tasks.
func (f *fixture) drain(ctx context.Context, limit int) int {
	var n int
	for ; n < limit; n++ {
		f.mu.Lock()
		if len(f.tasks) == 0 {
			f.mu.Unlock()
			break
		}
		task := f.tasks[0]
		f.tasks = f.tasks[1:]
		f.mu.Unlock()

		task(ctx)
	}
	return n
}

func (f *fixture) addRepo(t *testing.T, repo *model.Repository) *model.Repository {
	t.Helper()
	if repo.CreatedAt.IsZero() {
		repo.CreatedAt = baseTime.Add(-24 * time.Hour)
	}
	gt.NoError(t, f.store.CreateRepository(context.Background(), repo))
	return repo
}

func (f *fixture) getRepo(t *testing.T, id types.RepositoryID) *model.Repository {
	t.Helper()
	return gt.R1(f.store.GetRepository(context.Background(), id)).NoError(t)
}
