package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
)

func TestRunStuckImportSweep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inFlight := f.addRepo(t, &model.Repository{
		Path:                        "group/in-flight",
		MigrationState:              types.MigrationStatePreImporting,
		MigrationPreImportStartedAt: baseTime.Add(-2 * time.Hour),
	})

	newBatch := func(status types.BatchStatus, jobID types.JobID, updatedAt time.Time, paths ...types.RepositoryPath) *model.BatchImport {
		batch := &model.BatchImport{
			ID:              types.NewBatchImportID(),
			Paths:           paths,
			Stage:           types.BatchStagePreImport,
			Status:          status,
			JobID:           jobID,
			TimeoutStrategy: types.TimeoutStrategyOptimistic,
			CreatedAt:       updatedAt,
			UpdatedAt:       updatedAt,
		}
		gt.NoError(t, f.store.CreateBatchImport(ctx, batch))
		return batch
	}

	neverStarted := newBatch(types.BatchStatusScheduled, "", baseTime.Add(-25*time.Hour))
	recentlyScheduled := newBatch(types.BatchStatusScheduled, "", baseTime.Add(-time.Hour))
	vanished := newBatch(types.BatchStatusStarted, types.NewJobID(), baseTime.Add(-time.Hour), inFlight.Path)
	alive := newBatch(types.BatchStatusStarted, types.NewJobID(), baseTime.Add(-time.Hour))
	closed := newBatch(types.BatchStatusFinished, "", baseTime.Add(-48*time.Hour))
	gt.NoError(t, f.tracker.Set(f.ctx(), alive.JobID, time.Hour))

	kinds := map[string]int64{}
	f.metrics.AddStuckImportJobsFunc = func(ctx context.Context, kind string, n int64) {
		kinds[kind] += n
	}

	report := gt.R1(f.usecase().RunStuckImportSweep(f.ctx())).NoError(t)
	gt.V(t, report.Get("enqueued_batch_imports_count")).Equal(4)
	gt.V(t, report.Get("stuck_imports_without_jid_count")).Equal(1)
	gt.V(t, report.Get("stuck_imports_with_jid_count")).Equal(1)
	gt.V(t, kinds["without_jid"]).Equal(int64(1))
	gt.V(t, kinds["with_jid"]).Equal(int64(1))

	status := func(batch *model.BatchImport) types.BatchStatus {
		return gt.R1(f.store.GetBatchImport(ctx, batch.ID)).NoError(t).Status
	}
	gt.V(t, status(neverStarted)).Equal(types.BatchStatusFailed)
	gt.V(t, status(recentlyScheduled)).Equal(types.BatchStatusScheduled)
	gt.V(t, status(vanished)).Equal(types.BatchStatusFailed)
	gt.V(t, status(alive)).Equal(types.BatchStatusStarted)
	gt.V(t, status(closed)).Equal(types.BatchStatusFinished)

	gt.V(t, f.getRepo(t, inFlight.ID).MigrationState).Equal(types.MigrationStateImportAborted)

	t.Run("second sweep finds nothing new", func(t *testing.T) {
		report := gt.R1(f.usecase().RunStuckImportSweep(f.ctx())).NoError(t)
		gt.V(t, report.Get("stuck_imports_without_jid_count")).Equal(0)
		gt.V(t, report.Get("stuck_imports_with_jid_count")).Equal(0)
	})
}
