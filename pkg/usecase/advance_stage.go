package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/repository"
	"github.com/m-mizutani/regmig/pkg/utils/errutil"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

func (x *UseCase) scheduleAdvanceStage(ctx context.Context, state *model.AdvanceStageState, d time.Duration) {
	x.runner.After(ctx, d, "advance-stage", func(ctx context.Context) {
		if _, err := x.AdvanceStage(ctx, state); err != nil {
			errutil.HandleError(ctx, "failed to advance batch import stage", err)
		}
	})
}

// AdvanceStage checks whether the jobs of the current stage of a batch are done. It proceeds to
// the next stage when they are, or when they made no progress for too long and the batch is
// optimistic. Otherwise it schedules itself again with the carried state.
func (x *UseCase) AdvanceStage(ctx context.Context, state *model.AdvanceStageState) (model.AdvanceStageResult, error) {
	logger := logging.From(ctx).With("batch_id", state.BatchID, "next_stage", state.NextStage)

	batch, err := x.clients.RepositoryStore().GetBatchImport(ctx, state.BatchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.AdvanceStageGone, nil
		}
		return "", goerr.Wrap(err, "failed to get batch import", goerr.V("batch_id", state.BatchID))
	}
	if batch.Status != types.BatchStatusStarted {
		logger.Debug("batch import is not running", "status", batch.Status)
		return model.AdvanceStageGone, nil
	}

	next := *state
	next.Waiters = make(map[string]int, len(state.Waiters))
	for key, remaining := range state.Waiters {
		left, err := x.clients.JobWaiter().Wait(ctx, key, remaining, x.advanceWait)
		if err != nil {
			logger.Warn("failed to wait for jobs", "key", key, "error", err)
			left = remaining
		}
		if left > 0 {
			next.Waiters[key] = left
		}
	}

	now := logging.CtxTime(ctx)
	if count := next.JobCount(); count != state.PreviousJobCount {
		next.TimeoutStartedAt = now
		next.PreviousJobCount = count
	}

	if len(next.Waiters) == 0 {
		return model.AdvanceStageProceeded, x.proceedBatch(ctx, batch, next.NextStage)
	}

	if now.Sub(next.TimeoutStartedAt) > x.advanceTimeout {
		logger.Warn("batch import stage made no progress", "remaining", next.JobCount(), "strategy", batch.TimeoutStrategy)
		if batch.TimeoutStrategy == types.TimeoutStrategyPessimistic {
			if _, err := x.failBatch(ctx, batch.ID, "stage timed out with jobs remaining"); err != nil {
				return "", err
			}
			return model.AdvanceStageFailed, nil
		}
		return model.AdvanceStageProceeded, x.proceedBatch(ctx, batch, next.NextStage)
	}

	x.scheduleAdvanceStage(ctx, &next, x.advanceInterval)
	return model.AdvanceStageRescheduled, nil
}

func (x *UseCase) proceedBatch(ctx context.Context, batch *model.BatchImport, stage types.BatchStage) error {
	tracker := x.clients.JobTracker()
	if err := tracker.Expire(ctx, batch.JobID, jobIDTTL); err != nil {
		return goerr.Wrap(err, "failed to refresh batch job", goerr.V("batch_id", batch.ID))
	}

	if stage == types.BatchStageImport && len(batch.Succeeded) > 0 {
		return x.startBatchStage(ctx, batch.ID, stage)
	}

	finished, closed, err := x.updateBatch(ctx, batch.ID, func(b *model.BatchImport) bool {
		if !b.Status.Enqueued() {
			return false
		}
		b.Stage = types.BatchStageFinish
		b.Status = types.BatchStatusFinished
		return true
	})
	if err != nil || !closed {
		return err
	}

	logging.From(ctx).Info("batch import finished",
		"batch_id", finished.ID,
		"succeeded", len(finished.Succeeded),
		"failed", len(finished.Failed),
	)
	return tracker.Complete(ctx, finished.JobID)
}
