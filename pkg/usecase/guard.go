package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/utils/errutil"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

type guardAction int

const (
	guardKept guardAction = iota
	guardAborted
	guardCanceled
)

// RunGuard aborts migrations that stay in a stage for too long or that the registry no longer
// runs.
func (x *UseCase) RunGuard(ctx context.Context) (*model.WorkerReport, error) {
	ctx, report := startWorker(ctx, types.WorkerGuard)

	report.Set("production", x.production)
	if !x.production {
		return finishWorker(ctx, report), nil
	}

	settings, err := x.clients.Settings().Settings(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve migration settings")
	}

	now := logging.CtxTime(ctx)
	var stale []*model.Repository
	if limit := 2 * settings.Capacity; limit > 0 {
		stale, err = x.clients.RepositoryStore().ListStaleMigrations(ctx, now.Add(-settings.MaxStepDuration), limit)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list stale migrations")
		}
	}
	report.Set("stale_migrations_count", len(stale))

	dynamic := x.clients.FeatureFlags().Enabled(ctx, types.FeatureDynamicPreImportTimeout)

	var aborted int
	var canceledIDs []types.RepositoryID
	var canceledPaths []types.RepositoryPath
	for _, repo := range stale {
		action, err := x.guardRepository(ctx, repo, settings, dynamic, now)
		if err != nil {
			errutil.HandleError(ctx, "failed to guard stale migration", goerr.Wrap(err, "guard stale migration",
				goerr.V("repository_id", repo.ID),
				goerr.V("path", repo.Path),
			))
		}

		switch action {
		case guardCanceled:
			canceledIDs = append(canceledIDs, repo.ID)
			canceledPaths = append(canceledPaths, repo.Path)
			aborted++
		case guardAborted:
			aborted++
		}
	}

	report.Set("aborted_stale_migrations_count", aborted)
	if len(canceledIDs) > 0 {
		report.Set("aborted_long_running_migration_ids", canceledIDs)
		report.Set("aborted_long_running_migration_paths", canceledPaths)
	}
	x.clients.Metrics().AddGuardAborts(ctx, int64(aborted))

	return finishWorker(ctx, report), nil
}

// guardRepository returns what was done to repo. The action is reported even when persisting
// its outcome failed, since the registry side has been acted on already.
func (x *UseCase) guardRepository(ctx context.Context, repo *model.Repository, settings *model.MigrationSettings, dynamic bool, now time.Time) (guardAction, error) {
	logger := logging.From(ctx).With("repository_id", repo.ID, "path", repo.Path, "state", repo.MigrationState)

	if !x.activelyImporting(ctx, repo) {
		logger.Info("aborting migration the registry does not run")
		return guardAborted, x.abortImport(ctx, repo, settings)
	}

	if !model.LongRunning(repo, now, settings, dynamic) {
		return guardKept, nil
	}

	logger.Info("canceling long running migration", "started_at", repo.StageStartedAt())
	return guardCanceled, x.cancelLongRunning(ctx, repo, settings)
}

func (x *UseCase) activelyImporting(ctx context.Context, repo *model.Repository) bool {
	var expected types.ExternalImportStatus
	switch repo.MigrationState {
	case types.MigrationStatePreImporting:
		expected = types.ExternalStatusPreImportInProgress
	case types.MigrationStateImporting:
		expected = types.ExternalStatusImportInProgress
	default:
		return false
	}

	status, err := x.clients.Registry().ImportStatus(ctx, repo.Path)
	if err != nil {
		logging.From(ctx).Warn("failed to get import status", "repository_id", repo.ID, "error", err)
		return false
	}
	return status == expected
}

func (x *UseCase) cancelLongRunning(ctx context.Context, repo *model.Repository, settings *model.MigrationSettings) error {
	result, err := x.clients.Registry().CancelRepositoryImport(ctx, repo.Path, false)
	if err != nil {
		logging.From(ctx).Warn("failed to cancel import", "repository_id", repo.ID, "error", err)
		return x.abortImport(ctx, repo, settings)
	}

	switch result.Status {
	case types.CancelStatusOK:
		if repo.NearingOrExceededRetryLimit(settings.MaxRetries) {
			return x.apply(ctx, repo, func(now time.Time) error {
				return repo.SkipImport(types.SkipReasonMigrationCanceled, now)
			})
		}
		return x.abortImport(ctx, repo, settings)

	case types.CancelStatusBadRequest:
		return x.reconcileImportStatus(ctx, repo, result.State, settings, func() error {
			return x.abortImport(ctx, repo, settings)
		})

	default:
		return x.abortImport(ctx, repo, settings)
	}
}
