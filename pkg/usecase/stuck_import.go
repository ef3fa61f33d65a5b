package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/utils/errutil"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

const (
	stuckKindWithJobID    = "with_jid"
	stuckKindWithoutJobID = "without_jid"
)

// RunStuckImportSweep fails enqueued batch imports that nobody works on anymore: those that never
// got a job id within a day, and those whose job is completed or gone.
func (x *UseCase) RunStuckImportSweep(ctx context.Context) (*model.WorkerReport, error) {
	ctx, report := startWorker(ctx, types.WorkerStuckImports)
	store := x.clients.RepositoryStore()
	now := logging.CtxTime(ctx)

	batches, err := store.ListEnqueuedBatchImports(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list enqueued batch imports")
	}

	var withoutJobID int
	byJobID := make(map[types.JobID]types.BatchImportID)
	var jobIDs []types.JobID
	for _, batch := range batches {
		if batch.JobID != "" {
			byJobID[batch.JobID] = batch.ID
			jobIDs = append(jobIDs, batch.JobID)
			continue
		}
		if now.Sub(batch.UpdatedAt) <= stuckImportTimeout {
			continue
		}
		if x.failStuckBatch(ctx, batch.ID, "batch import was not started in time") {
			withoutJobID++
		}
	}

	var withJobID int
	if len(jobIDs) > 0 {
		completed, err := x.clients.JobTracker().CompletedJobIDs(ctx, jobIDs)
		if err != nil {
			errutil.HandleError(ctx, "failed to get completed job ids", err)
		}
		for _, jobID := range completed {
			id, ok := byJobID[jobID]
			if !ok {
				continue
			}

			// the batch may have finished since it was listed
			batch, err := store.GetBatchImport(ctx, id)
			if err != nil {
				errutil.HandleError(ctx, "failed to get batch import", err)
				continue
			}
			if !batch.Status.Enqueued() || batch.JobID != jobID {
				continue
			}
			if x.failStuckBatch(ctx, id, "batch import job is gone") {
				withJobID++
			}
		}
	}

	report.Set("enqueued_batch_imports_count", len(batches))
	report.Set("stuck_imports_without_jid_count", withoutJobID)
	report.Set("stuck_imports_with_jid_count", withJobID)
	x.clients.Metrics().AddStuckImportJobs(ctx, stuckKindWithoutJobID, int64(withoutJobID))
	x.clients.Metrics().AddStuckImportJobs(ctx, stuckKindWithJobID, int64(withJobID))

	return finishWorker(ctx, report), nil
}

func (x *UseCase) failStuckBatch(ctx context.Context, id types.BatchImportID, reason string) bool {
	failed, err := x.failBatch(ctx, id, reason)
	if err != nil {
		errutil.HandleError(ctx, "failed to fail stuck batch import", goerr.Wrap(err, "fail stuck batch", goerr.V("batch_id", id)))
		return false
	}
	return failed
}
