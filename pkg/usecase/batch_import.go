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

type batchOutcome int

const (
	batchOutcomeRunning batchOutcome = iota
	batchOutcomeSucceeded
	batchOutcomeFailed
)

func batchWaiterKey(id types.BatchImportID, stage types.BatchStage) string {
	return "batch:" + id.String() + ":" + string(stage)
}

func nextBatchStage(stage types.BatchStage) types.BatchStage {
	if stage == types.BatchStagePreImport {
		return types.BatchStageImport
	}
	return types.BatchStageFinish
}

// StartBatchImport schedules a batch that migrates the given repositories through both stages.
func (x *UseCase) StartBatchImport(ctx context.Context, input *model.StartBatchImportInput) (*model.BatchImport, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	store := x.clients.RepositoryStore()
	for _, path := range input.Paths {
		if _, err := store.GetRepositoryByPath(ctx, path); err != nil {
			return nil, goerr.Wrap(err, "repository of batch import is not available", goerr.V("path", path))
		}
	}

	strategy := input.TimeoutStrategy
	if strategy == "" {
		strategy = types.TimeoutStrategyOptimistic
	}

	now := logging.CtxTime(ctx)
	batch := &model.BatchImport{
		ID:              types.NewBatchImportID(),
		Paths:           append([]types.RepositoryPath(nil), input.Paths...),
		Stage:           types.BatchStagePreImport,
		Status:          types.BatchStatusScheduled,
		TimeoutStrategy: strategy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := store.CreateBatchImport(ctx, batch); err != nil {
		return nil, goerr.Wrap(err, "failed to create batch import")
	}

	logging.From(ctx).Info("batch import scheduled", "batch_id", batch.ID, "paths", len(batch.Paths))
	x.runner.After(ctx, 0, "batch-import", func(ctx context.Context) {
		x.runBatchStage(ctx, batch.ID, types.BatchStagePreImport)
	})

	return batch.Copy(), nil
}

func (x *UseCase) GetBatchImport(ctx context.Context, id types.BatchImportID) (*model.BatchImport, error) {
	batch, err := x.clients.RepositoryStore().GetBatchImport(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get batch import", goerr.V("batch_id", id))
	}
	return batch, nil
}

func (x *UseCase) runBatchStage(ctx context.Context, id types.BatchImportID, stage types.BatchStage) {
	if err := x.startBatchStage(ctx, id, stage); err != nil {
		errutil.HandleError(ctx, "failed to run batch import stage", err)
		if _, err := x.failBatch(ctx, id, "stage could not be started: "+err.Error()); err != nil {
			errutil.HandleError(ctx, "failed to mark batch import failed", err)
		}
	}
}

// startBatchStage starts stage for every target repository of the batch and hands the started
// ones over to poll jobs. An advance check is scheduled to wait for them.
func (x *UseCase) startBatchStage(ctx context.Context, id types.BatchImportID, stage types.BatchStage) error {
	logger := logging.From(ctx).With("batch_id", id, "stage", stage)

	settings, err := x.clients.Settings().Settings(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve migration settings")
	}

	tracker := x.clients.JobTracker()
	jobID := types.NewJobID()
	if err := tracker.Set(ctx, jobID, jobIDTTL); err != nil {
		return goerr.Wrap(err, "failed to register batch job", goerr.V("batch_id", id))
	}

	var previousJobID types.JobID
	var targets []types.RepositoryPath
	_, started, err := x.updateBatch(ctx, id, func(batch *model.BatchImport) bool {
		if !batch.Status.Enqueued() {
			return false
		}
		previousJobID = batch.JobID
		if stage == types.BatchStageImport {
			targets = batch.Succeeded
			batch.Succeeded = nil
		} else {
			targets = batch.Paths
		}
		batch.Stage = stage
		batch.Status = types.BatchStatusStarted
		batch.JobID = jobID
		return true
	})
	if err != nil {
		return err
	}
	if !started {
		logger.Info("batch import is already closed")
		return tracker.Complete(ctx, jobID)
	}
	if previousJobID != "" {
		if err := tracker.Complete(ctx, previousJobID); err != nil {
			errutil.HandleError(ctx, "failed to complete previous batch job", err)
		}
	}

	key := batchWaiterKey(id, stage)
	var spawned int
	for _, path := range targets {
		outcome, err := x.startBatchRepository(ctx, path, stage, settings)
		if err != nil {
			errutil.HandleError(ctx, "failed to start repository of batch import", goerr.Wrap(err, "start batch repository",
				goerr.V("batch_id", id),
				goerr.V("path", path),
			))
			outcome = batchOutcomeFailed
		}

		if outcome != batchOutcomeRunning {
			if err := x.recordBatchResult(ctx, id, path, outcome == batchOutcomeSucceeded); err != nil {
				errutil.HandleError(ctx, "failed to record batch result", err)
			}
			continue
		}

		pollJobID := types.NewJobID()
		if err := tracker.Set(ctx, pollJobID, jobIDTTL); err != nil {
			errutil.HandleError(ctx, "failed to register poll job", err)
		}
		spawned++
		x.runner.After(ctx, 0, "batch-poll", func(ctx context.Context) {
			x.pollBatchRepository(ctx, id, key, pollJobID, jobID, path, stage)
		})
	}

	state := &model.AdvanceStageState{
		BatchID:          id,
		Waiters:          map[string]int{},
		NextStage:        nextBatchStage(stage),
		TimeoutStartedAt: logging.CtxTime(ctx),
		PreviousJobCount: spawned,
	}
	if spawned > 0 {
		state.Waiters[key] = spawned
	}

	logger.Info("batch import stage started", "targets", len(targets), "running", spawned)
	x.scheduleAdvanceStage(ctx, state, 0)
	return nil
}

func (x *UseCase) startBatchRepository(ctx context.Context, path types.RepositoryPath, stage types.BatchStage, settings *model.MigrationSettings) (batchOutcome, error) {
	repo, err := x.clients.RepositoryStore().GetRepositoryByPath(ctx, path)
	if err != nil {
		return batchOutcomeFailed, goerr.Wrap(err, "failed to get repository")
	}

	var accepted bool
	switch {
	case repo.MigrationState == types.MigrationStateImportDone:
		return batchOutcomeSucceeded, nil
	case stage == types.BatchStageImport && repo.Importing():
		return batchOutcomeRunning, nil
	case stage == types.BatchStageImport:
		accepted, err = x.startImport(ctx, repo, settings)
	default:
		accepted, err = x.startPreImport(ctx, repo, settings)
	}
	if err != nil {
		return batchOutcomeFailed, err
	}
	if accepted {
		return batchOutcomeRunning, nil
	}
	if repo.MigrationState == types.MigrationStateImportDone {
		return batchOutcomeSucceeded, nil
	}
	return batchOutcomeFailed, nil
}

// pollBatchRepository follows one repository until its stage ends and notifies the waiter of the
// stage.
func (x *UseCase) pollBatchRepository(ctx context.Context, id types.BatchImportID, key string, pollJobID, batchJobID types.JobID, path types.RepositoryPath, stage types.BatchStage) {
	refreshCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := x.RefreshImportJobID(refreshCtx, pollJobID, batchJobID); err != nil {
			errutil.HandleError(ctx, "failed to refresh job id", err)
		}
	}()

	succeeded, err := x.waitRepositoryStage(ctx, id, path, stage)
	if err != nil {
		errutil.HandleError(ctx, "failed to poll repository of batch import", goerr.Wrap(err, "poll batch repository",
			goerr.V("batch_id", id),
			goerr.V("path", path),
		))
	}
	if err := x.recordBatchResult(ctx, id, path, succeeded); err != nil {
		errutil.HandleError(ctx, "failed to record batch result", err)
	}

	if err := x.clients.JobTracker().Complete(ctx, pollJobID); err != nil {
		errutil.HandleError(ctx, "failed to complete poll job", err)
	}
	if err := x.clients.JobWaiter().Notify(ctx, key, pollJobID); err != nil {
		errutil.HandleError(ctx, "failed to notify poll job completion", err)
	}
}

func (x *UseCase) waitRepositoryStage(ctx context.Context, id types.BatchImportID, path types.RepositoryPath, stage types.BatchStage) (bool, error) {
	store := x.clients.RepositoryStore()

	for {
		batch, err := store.GetBatchImport(ctx, id)
		if err != nil {
			return false, goerr.Wrap(err, "failed to get batch import")
		}
		if !batch.Status.Enqueued() {
			return false, nil
		}

		repo, err := store.GetRepositoryByPath(ctx, path)
		if err != nil {
			return false, goerr.Wrap(err, "failed to get repository")
		}
		if done, succeeded := batchStageResult(repo, stage); done {
			return succeeded, nil
		}

		status, err := x.clients.Registry().ImportStatus(ctx, path)
		if err != nil {
			logging.From(ctx).Warn("failed to get import status", "path", path, "error", err)
		} else if err := x.applyStageStatus(ctx, repo, stage, status); err != nil {
			logging.From(ctx).Warn("failed to apply import status", "path", path, "status", status, "error", err)
		} else if done, succeeded := batchStageResult(repo, stage); done {
			return succeeded, nil
		}

		if err := logging.Sleep(ctx, x.statusPollInterval); err != nil {
			return false, goerr.Wrap(err, "interrupted while polling import status")
		}
	}
}

// batchStageResult tells from the local state whether stage of repo has ended.
func batchStageResult(repo *model.Repository, stage types.BatchStage) (done bool, succeeded bool) {
	switch repo.MigrationState {
	case types.MigrationStateImportDone:
		return true, true
	case types.MigrationStateImportAborted, types.MigrationStateImportSkipped, types.MigrationStateDefault:
		return true, false
	case types.MigrationStatePreImportDone, types.MigrationStateImporting:
		return stage == types.BatchStagePreImport, true
	default:
		return false, false
	}
}

func (x *UseCase) applyStageStatus(ctx context.Context, repo *model.Repository, stage types.BatchStage, status types.ExternalImportStatus) error {
	settings, err := x.clients.Settings().Settings(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve migration settings")
	}
	abort := func(now time.Time) error { return repo.AbortImport(now, settings.MaxRetries) }

	switch {
	case status == types.ExternalStatusNative:
		return x.apply(ctx, repo, func(now time.Time) error {
			return repo.FinishImportAs(types.SkipReasonNativeImport, now)
		})
	case stage == types.BatchStagePreImport && status == types.ExternalStatusPreImportComplete:
		return x.apply(ctx, repo, repo.FinishPreImport)
	case stage == types.BatchStagePreImport && (status == types.ExternalStatusPreImportFailed || status == types.ExternalStatusPreImportCanceled):
		return x.apply(ctx, repo, abort)
	case stage == types.BatchStageImport && status == types.ExternalStatusImportComplete:
		return x.apply(ctx, repo, repo.FinishImport)
	case stage == types.BatchStageImport && (status == types.ExternalStatusImportFailed || status == types.ExternalStatusImportCanceled):
		return x.apply(ctx, repo, abort)
	default:
		return nil
	}
}

func (x *UseCase) recordBatchResult(ctx context.Context, id types.BatchImportID, path types.RepositoryPath, succeeded bool) error {
	_, _, err := x.updateBatch(ctx, id, func(batch *model.BatchImport) bool {
		if !batch.Status.Enqueued() {
			return false
		}
		if succeeded {
			batch.Succeeded = append(batch.Succeeded, path)
		} else {
			batch.Failed = append(batch.Failed, path)
		}
		return true
	})
	return err
}

// updateBatch reads the batch, lets fn change it and saves it when fn returns true.
func (x *UseCase) updateBatch(ctx context.Context, id types.BatchImportID, fn func(batch *model.BatchImport) bool) (*model.BatchImport, bool, error) {
	x.batchMu.Lock()
	defer x.batchMu.Unlock()

	store := x.clients.RepositoryStore()
	batch, err := store.GetBatchImport(ctx, id)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to get batch import", goerr.V("batch_id", id))
	}
	if !fn(batch) {
		return batch, false, nil
	}

	batch.UpdatedAt = logging.CtxTime(ctx)
	if err := store.UpdateBatchImport(ctx, batch); err != nil {
		return nil, false, goerr.Wrap(err, "failed to update batch import", goerr.V("batch_id", id))
	}
	return batch, true, nil
}

// failBatch closes an enqueued batch as failed and aborts its repositories still in flight. It
// returns false if the batch was already closed.
func (x *UseCase) failBatch(ctx context.Context, id types.BatchImportID, reason string) (bool, error) {
	now := logging.CtxTime(ctx)
	batch, failed, err := x.updateBatch(ctx, id, func(batch *model.BatchImport) bool {
		if !batch.Status.Enqueued() {
			return false
		}
		batch.MarkFailed(reason, now)
		return true
	})
	if err != nil || !failed {
		return false, err
	}

	logging.From(ctx).Warn("batch import failed", "batch_id", id, "reason", reason)
	if batch.JobID != "" {
		if err := x.clients.JobTracker().Complete(ctx, batch.JobID); err != nil {
			errutil.HandleError(ctx, "failed to complete batch job", err)
		}
	}

	x.abortBatchRepositories(ctx, batch)
	return true, nil
}

func (x *UseCase) abortBatchRepositories(ctx context.Context, batch *model.BatchImport) {
	settings, err := x.clients.Settings().Settings(ctx)
	if err != nil {
		errutil.HandleError(ctx, "failed to resolve migration settings", err)
		return
	}

	store := x.clients.RepositoryStore()
	for _, path := range batch.Paths {
		repo, err := store.GetRepositoryByPath(ctx, path)
		if err != nil {
			errutil.HandleError(ctx, "failed to get repository of failed batch", err)
			continue
		}
		if !repo.MigrationState.InFlight() {
			continue
		}
		if err := x.abortImport(ctx, repo, settings); err != nil {
			errutil.HandleError(ctx, "failed to abort repository of failed batch", err)
		}
	}
}
