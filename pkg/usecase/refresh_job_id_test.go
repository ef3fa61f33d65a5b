package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/usecase"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

func TestRefreshImportJobID(t *testing.T) {
	f := newFixture(t)
	uc := f.usecase(usecase.WithRefreshInterval(5 * time.Minute))

	jobID := types.NewJobID()
	batchJobID := types.NewJobID()

	now := baseTime
	ctx := logging.CtxWithTime(context.Background(), func() time.Time { return now })
	gt.NoError(t, f.tracker.Set(ctx, jobID, time.Hour))
	gt.NoError(t, f.tracker.Set(ctx, batchJobID, time.Hour))

	var sleeps []time.Duration
	ctx = logging.CtxWithSleep(ctx, func(ctx context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		switch len(sleeps) {
		case 1:
			// both ids would expire within the hour without a refresh
			now = baseTime.Add(50 * time.Minute)
		case 2:
			now = baseTime.Add(2 * time.Hour)
			return f.tracker.Complete(ctx, jobID)
		}
		return nil
	})

	gt.NoError(t, uc.RefreshImportJobID(ctx, jobID, batchJobID))
	gt.A(t, sleeps).Length(2)
	gt.V(t, sleeps[0]).Equal(5 * time.Minute)

	running := gt.R1(f.tracker.Running(ctx, batchJobID)).NoError(t)
	gt.True(t, running)
}

func TestRefreshImportJobID_Canceled(t *testing.T) {
	f := newFixture(t)
	uc := f.usecase(usecase.WithRefreshInterval(time.Hour))

	jobID := types.NewJobID()
	gt.NoError(t, f.tracker.Set(context.Background(), jobID, time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gt.NoError(t, uc.RefreshImportJobID(ctx, jobID, ""))
}
