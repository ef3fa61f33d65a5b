package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/usecase"
)

func guardFixture(t *testing.T) *fixture {
	f := newFixture(t)
	f.settings.Capacity = 5
	f.settings.MaxStepDuration = 5 * time.Minute
	f.settings.ImportTimeout = 10 * time.Minute
	f.settings.PreImportTimeout = 30 * time.Minute
	return f
}

func statusOf(statuses map[types.RepositoryPath]types.ExternalImportStatus) func(ctx context.Context, path types.RepositoryPath) (types.ExternalImportStatus, error) {
	return func(ctx context.Context, path types.RepositoryPath) (types.ExternalImportStatus, error) {
		if s, ok := statuses[path]; ok {
			return s, nil
		}
		return "", errors.New("unknown repository")
	}
}

func TestRunGuard_NotProduction(t *testing.T) {
	f := guardFixture(t)
	f.addRepo(t, &model.Repository{
		Path:                        "group/stale",
		MigrationState:              types.MigrationStatePreImporting,
		MigrationPreImportStartedAt: baseTime.Add(-time.Hour),
	})

	report := gt.R1(f.usecase().RunGuard(f.ctx())).NoError(t)
	gt.V(t, report.Get("production")).Equal(false)
	gt.A(t, f.registry.ImportStatusCalls()).Length(0)
}

func TestRunGuard_Drift(t *testing.T) {
	f := guardFixture(t)
	drifted := f.addRepo(t, &model.Repository{
		Path:                        "group/drifted",
		MigrationState:              types.MigrationStatePreImporting,
		MigrationPreImportStartedAt: baseTime.Add(-10 * time.Minute),
	})
	done := f.addRepo(t, &model.Repository{
		Path:                     "group/pre-import-done",
		MigrationState:           types.MigrationStatePreImportDone,
		MigrationPreImportDoneAt: baseTime.Add(-10 * time.Minute),
	})
	unreachable := f.addRepo(t, &model.Repository{
		Path:                     "group/unreachable",
		MigrationState:           types.MigrationStateImporting,
		MigrationImportStartedAt: baseTime.Add(-6 * time.Minute),
	})
	f.registry.ImportStatusFunc = statusOf(map[types.RepositoryPath]types.ExternalImportStatus{
		drifted.Path: types.ExternalStatusImportInProgress,
	})

	var aborts []int64
	f.metrics.AddGuardAbortsFunc = func(ctx context.Context, n int64) {
		aborts = append(aborts, n)
	}

	report := gt.R1(f.usecase(usecase.WithProduction(true)).RunGuard(f.ctx())).NoError(t)
	gt.V(t, report.Get("stale_migrations_count")).Equal(3)
	gt.V(t, report.Get("aborted_stale_migrations_count")).Equal(3)
	gt.V(t, report.Get("aborted_long_running_migration_ids")).Equal(nil)
	gt.A(t, f.registry.CancelRepositoryImportCalls()).Length(0)
	gt.V(t, aborts).Equal([]int64{3})

	for _, repo := range []*model.Repository{drifted, done, unreachable} {
		got := f.getRepo(t, repo.ID)
		gt.V(t, got.MigrationState).Equal(types.MigrationStateImportAborted)
		gt.V(t, got.MigrationAbortedInState).Equal(repo.MigrationState)
	}
}

func TestRunGuard_LongRunning(t *testing.T) {
	testCases := map[string]struct {
		retries int
		cancel  *model.CancelResult
		err     error
		state   types.MigrationState
		reason  types.SkipReason
	}{
		"canceled import is aborted": {
			cancel: &model.CancelResult{Status: types.CancelStatusOK},
			state:  types.MigrationStateImportAborted,
		},
		"canceled import nearing retry limit is skipped": {
			retries: 2,
			cancel:  &model.CancelResult{Status: types.CancelStatusOK},
			state:   types.MigrationStateImportSkipped,
			reason:  types.SkipReasonMigrationCanceled,
		},
		"bad request reconciles with registry state": {
			cancel: &model.CancelResult{Status: types.CancelStatusBadRequest, State: types.ExternalStatusImportComplete},
			state:  types.MigrationStateImportDone,
		},
		"bad request without usable state aborts": {
			cancel: &model.CancelResult{Status: types.CancelStatusBadRequest},
			state:  types.MigrationStateImportAborted,
		},
		"not found aborts": {
			cancel: &model.CancelResult{Status: types.CancelStatusNotFound},
			state:  types.MigrationStateImportAborted,
		},
		"transport error aborts": {
			err:   errors.New("connection refused"),
			state: types.MigrationStateImportAborted,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			f := guardFixture(t)
			repo := f.addRepo(t, &model.Repository{
				Path:                     "group/slow",
				MigrationState:           types.MigrationStateImporting,
				MigrationImportStartedAt: baseTime.Add(-20 * time.Minute),
				MigrationRetriesCount:    tc.retries,
			})
			f.registry.ImportStatusFunc = statusOf(map[types.RepositoryPath]types.ExternalImportStatus{
				repo.Path: types.ExternalStatusImportInProgress,
			})
			f.registry.CancelRepositoryImportFunc = func(ctx context.Context, path types.RepositoryPath, force bool) (*model.CancelResult, error) {
				gt.False(t, force)
				return tc.cancel, tc.err
			}

			report := gt.R1(f.usecase(usecase.WithProduction(true)).RunGuard(f.ctx())).NoError(t)
			gt.V(t, report.Get("aborted_stale_migrations_count")).Equal(1)
			gt.V(t, report.Get("aborted_long_running_migration_ids")).Equal([]types.RepositoryID{repo.ID})
			gt.V(t, report.Get("aborted_long_running_migration_paths")).Equal([]types.RepositoryPath{repo.Path})

			got := f.getRepo(t, repo.ID)
			gt.V(t, got.MigrationState).Equal(tc.state)
			gt.V(t, got.MigrationSkippedReason).Equal(tc.reason)
		})
	}
}

func TestRunGuard_WithinTimeout(t *testing.T) {
	f := guardFixture(t)
	repo := f.addRepo(t, &model.Repository{
		Path:                     "group/running",
		MigrationState:           types.MigrationStateImporting,
		MigrationImportStartedAt: baseTime.Add(-7 * time.Minute),
	})
	f.registry.ImportStatusFunc = statusOf(map[types.RepositoryPath]types.ExternalImportStatus{
		repo.Path: types.ExternalStatusImportInProgress,
	})

	report := gt.R1(f.usecase(usecase.WithProduction(true)).RunGuard(f.ctx())).NoError(t)
	gt.V(t, report.Get("stale_migrations_count")).Equal(1)
	gt.V(t, report.Get("aborted_stale_migrations_count")).Equal(0)
	gt.V(t, f.getRepo(t, repo.ID).MigrationState).Equal(types.MigrationStateImporting)
}

func TestRunGuard_DynamicPreImportTimeout(t *testing.T) {
	f := guardFixture(t)
	f.settings.PreImportTagsRate = 1
	repo := f.addRepo(t, &model.Repository{
		Path:                        "group/large",
		MigrationState:              types.MigrationStatePreImporting,
		MigrationPreImportStartedAt: baseTime.Add(-40 * time.Minute),
		TagsCount:                   3600,
	})
	f.registry.ImportStatusFunc = statusOf(map[types.RepositoryPath]types.ExternalImportStatus{
		repo.Path: types.ExternalStatusPreImportInProgress,
	})

	f.registry.CancelRepositoryImportFunc = func(ctx context.Context, path types.RepositoryPath, force bool) (*model.CancelResult, error) {
		return &model.CancelResult{Status: types.CancelStatusNotFound}, nil
	}
	uc := f.usecase(usecase.WithProduction(true))

	// 3600 tags get an hour once the 30 minute static timeout is exceeded
	f.flags[types.FeatureDynamicPreImportTimeout] = true
	report := gt.R1(uc.RunGuard(f.ctx())).NoError(t)
	gt.V(t, report.Get("aborted_stale_migrations_count")).Equal(0)
	gt.V(t, f.getRepo(t, repo.ID).MigrationState).Equal(types.MigrationStatePreImporting)

	f.flags[types.FeatureDynamicPreImportTimeout] = false
	report = gt.R1(uc.RunGuard(f.ctx())).NoError(t)
	gt.V(t, report.Get("aborted_stale_migrations_count")).Equal(1)
	gt.V(t, f.getRepo(t, repo.ID).MigrationState).Equal(types.MigrationStateImportAborted)
}

func TestRunGuard_Idempotent(t *testing.T) {
	f := guardFixture(t)
	repo := f.addRepo(t, &model.Repository{
		Path:                        "group/stale",
		MigrationState:              types.MigrationStatePreImporting,
		MigrationPreImportStartedAt: baseTime.Add(-time.Hour),
	})
	uc := f.usecase(usecase.WithProduction(true))

	first := gt.R1(uc.RunGuard(f.ctx())).NoError(t)
	gt.V(t, first.Get("aborted_stale_migrations_count")).Equal(1)

	second := gt.R1(uc.RunGuard(f.ctx())).NoError(t)
	gt.V(t, second.Get("stale_migrations_count")).Equal(0)
	gt.V(t, second.Get("aborted_stale_migrations_count")).Equal(0)

	got := f.getRepo(t, repo.ID)
	gt.V(t, got.MigrationState).Equal(types.MigrationStateImportAborted)
	gt.V(t, got.MigrationRetriesCount).Equal(1)
}

func TestRunGuard_LimitedByCapacity(t *testing.T) {
	f := guardFixture(t)
	f.settings.Capacity = 1
	for _, path := range []types.RepositoryPath{"group/a", "group/b", "group/c"} {
		f.addRepo(t, &model.Repository{
			Path:                        path,
			MigrationState:              types.MigrationStatePreImporting,
			MigrationPreImportStartedAt: baseTime.Add(-time.Hour),
		})
	}

	report := gt.R1(f.usecase(usecase.WithProduction(true)).RunGuard(f.ctx())).NoError(t)
	gt.V(t, report.Get("stale_migrations_count")).Equal(2)

	t.Run("zero capacity queries nothing", func(t *testing.T) {
		f.settings.Capacity = 0
		report := gt.R1(f.usecase(usecase.WithProduction(true)).RunGuard(f.ctx())).NoError(t)
		gt.V(t, report.Get("stale_migrations_count")).Equal(0)
	})
}
