package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

// RefreshImportJobID keeps jobID and the job id of its batch alive while jobID is running. It
// returns when the job is no longer running or ctx is done.
func (x *UseCase) RefreshImportJobID(ctx context.Context, jobID, batchJobID types.JobID) error {
	tracker := x.clients.JobTracker()

	for {
		if err := logging.Sleep(ctx, x.refreshInterval); err != nil {
			return nil
		}

		running, err := tracker.Running(ctx, jobID)
		if err != nil {
			return goerr.Wrap(err, "failed to get job status", goerr.V("job_id", jobID))
		}
		if !running {
			return nil
		}

		for _, id := range []types.JobID{jobID, batchJobID} {
			if id == "" {
				continue
			}
			if err := tracker.Expire(ctx, id, jobIDTTL); err != nil {
				return goerr.Wrap(err, "failed to extend job id", goerr.V("job_id", id))
			}
		}
		logging.From(ctx).Debug("extended job ids", "job_id", jobID, "batch_job_id", batchJobID)
	}
}
