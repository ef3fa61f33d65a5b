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

// RunEnqueuer starts migrations while capacity allows. Only one enqueuer runs at a time; an
// invocation that can not obtain the lease ends right away.
func (x *UseCase) RunEnqueuer(ctx context.Context) (*model.WorkerReport, error) {
	ctx, report := startWorker(ctx, types.WorkerEnqueuer)
	logger := logging.From(ctx)

	leases := x.clients.ExclusiveLease()
	token, err := leases.TryObtain(ctx, enqueuerLeaseKey, enqueuerLeaseTimeout)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to obtain enqueuer lease", goerr.V("key", enqueuerLeaseKey))
	}
	report.Set("lease_obtained", token != "")
	if token == "" {
		logger.Info("enqueuer lease is held by another worker")
		return finishWorker(ctx, report), nil
	}
	defer func() {
		if err := leases.Cancel(ctx, enqueuerLeaseKey, token); err != nil {
			errutil.HandleError(ctx, "failed to cancel enqueuer lease", err)
		}
	}()

	e := &enqueuer{
		uc:       x,
		report:   report,
		deadline: report.StartedAt.Add(x.enqueuerDeadline),
		tried:    make(map[types.RepositoryID]struct{}),
	}
	if err := e.run(ctx); err != nil {
		return nil, err
	}

	return finishWorker(ctx, report), nil
}

type enqueuer struct {
	uc       *UseCase
	report   *model.WorkerReport
	deadline time.Time

	// repositories handled in this invocation, successfully or not
	tried   map[types.RepositoryID]struct{}
	touched bool
}

func (x *enqueuer) run(ctx context.Context) error {
	for {
		settings, ok, err := x.runnable(ctx)
		if err != nil {
			if !x.touched {
				return err
			}
			errutil.HandleError(ctx, "enqueuer stopped by infrastructure error", err)
			return nil
		}
		if !ok {
			return nil
		}

		if !logging.CtxTime(ctx).Before(x.deadline) {
			x.report.Set("deadline_reached", true)
			logging.From(ctx).Info("enqueuer reached its deadline")
			return nil
		}

		handled, err := x.handleOne(ctx, settings)
		if err != nil {
			errutil.HandleError(ctx, "failed to look up migration candidates", err)
			return nil
		}
		if !handled {
			logging.From(ctx).Debug("no migration candidate")
			return nil
		}
	}
}

// runnable resolves settings again and checks every gate. The reason of a closed gate is kept in
// the report.
func (x *enqueuer) runnable(ctx context.Context) (*model.MigrationSettings, bool, error) {
	logger := logging.From(ctx)
	store := x.uc.clients.RepositoryStore()

	settings, err := x.uc.clients.Settings().Settings(ctx)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to resolve migration settings")
	}

	x.report.Set("migration_enabled", settings.Enabled)
	if !settings.Enabled {
		logger.Info("migration is disabled")
		return nil, false, nil
	}

	x.report.Set("max_capacity_setting", settings.Capacity)
	current, err := store.CountByMigrationStates(ctx, types.InFlightMigrationStates)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to count in-flight repositories")
	}
	belowCapacity := current < int64(settings.Capacity)
	x.report.Set("current_capacity", current)
	x.report.Set("below_capacity", belowCapacity)
	if !belowCapacity {
		logger.Info("migration capacity is full", "current", current, "capacity", settings.Capacity)
		return nil, false, nil
	}

	passed, err := x.waitingTimePassed(ctx, settings)
	if err != nil {
		return nil, false, err
	}
	x.report.Set("waiting_time_passed", passed)
	if !passed {
		logger.Info("waiting time since the last completed step has not passed",
			"waiting_time", settings.EnqueueWaitingTime,
		)
		return nil, false, nil
	}

	return settings, true, nil
}

func (x *enqueuer) waitingTimePassed(ctx context.Context, settings *model.MigrationSettings) (bool, error) {
	if settings.EnqueueWaitingTime == 0 {
		return true, nil
	}

	last, err := x.uc.clients.RepositoryStore().GetLastStepCompleted(ctx)
	if err != nil {
		return false, goerr.Wrap(err, "failed to get last completed repository")
	}
	if last == nil {
		return true, nil
	}

	doneAt := last.LastImportStepDoneAt()
	return doneAt.Before(logging.CtxTime(ctx).Add(-settings.EnqueueWaitingTime)), nil
}

// handleOne retries one aborted repository, or starts one new repository if none is aborted.
// It returns false when there is nothing left to do.
func (x *enqueuer) handleOne(ctx context.Context, settings *model.MigrationSettings) (bool, error) {
	store := x.uc.clients.RepositoryStore()

	aborted, err := store.ListByMigrationState(ctx, types.MigrationStateImportAborted, enqueuerPageSize)
	if err != nil {
		return false, goerr.Wrap(err, "failed to list aborted repositories")
	}
	if repo := x.untried(aborted); repo != nil {
		x.handleAborted(ctx, repo, settings)
		return true, nil
	}

	candidates, err := store.ListReadyForImport(ctx, settings.CreatedBefore, enqueuerPageSize)
	if err != nil {
		return false, goerr.Wrap(err, "failed to list repositories ready for import")
	}
	if repo := x.untried(candidates); repo != nil {
		x.handleNext(ctx, repo, settings)
		return true, nil
	}

	return false, nil
}

func (x *enqueuer) untried(repos []*model.Repository) *model.Repository {
	for _, repo := range repos {
		if _, ok := x.tried[repo.ID]; !ok {
			return repo
		}
	}
	return nil
}

func (x *enqueuer) handleAborted(ctx context.Context, repo *model.Repository, settings *model.MigrationSettings) {
	x.tried[repo.ID] = struct{}{}
	x.touched = true

	if err := x.uc.retryAbortedMigration(ctx, repo, settings); err != nil {
		errutil.HandleError(ctx, "failed to retry aborted migration", goerr.Wrap(err, "retry aborted migration",
			goerr.V("repository_id", repo.ID),
			goerr.V("path", repo.Path),
		))
		return
	}

	x.report.Add("aborted_retry_count", 1)
	x.handled(repo)
}

func (x *enqueuer) handleNext(ctx context.Context, repo *model.Repository, settings *model.MigrationSettings) {
	x.tried[repo.ID] = struct{}{}
	x.touched = true

	if settings.MaxTagsCount > 0 && repo.TagsCount > settings.MaxTagsCount {
		err := x.uc.apply(ctx, repo, func(now time.Time) error {
			return repo.SkipImport(types.SkipReasonTooManyTags, now)
		})
		if err != nil {
			errutil.HandleError(ctx, "failed to skip repository with too many tags", err)
			x.report.Add("failed_count", 1)
			return
		}
		x.report.Add("skipped_too_many_tags_count", 1)
		x.handled(repo)
		return
	}

	if _, err := x.uc.startPreImport(ctx, repo, settings); err != nil {
		errutil.HandleError(ctx, "failed to start pre-import", goerr.Wrap(err, "start pre-import",
			goerr.V("repository_id", repo.ID),
			goerr.V("path", repo.Path),
		))
		if err := x.uc.abortImport(ctx, repo, settings); err != nil {
			errutil.HandleError(ctx, "failed to abort repository after start failure", err)
		}
		x.report.Add("failed_count", 1)
		return
	}

	x.report.Add("next_count", 1)
	x.handled(repo)
}

func (x *enqueuer) handled(repo *model.Repository) {
	x.report.Add("handled_count", 1)
	x.report.Set("last_handled_repository_id", repo.ID)
	x.report.Set("last_handled_repository_path", repo.Path)
	x.report.Set("last_handled_repository_state", repo.MigrationState)
}
