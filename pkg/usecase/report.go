package usecase

import (
	"context"

	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

// startWorker returns the report of a new invocation and a context whose logger is tagged with
// the worker name.
func startWorker(ctx context.Context, worker types.WorkerName) (context.Context, *model.WorkerReport) {
	ctx = logging.With(ctx, logging.From(ctx).With("worker", worker))
	return ctx, model.NewWorkerReport(worker, logging.CtxTime(ctx))
}

func finishWorker(ctx context.Context, report *model.WorkerReport) *model.WorkerReport {
	report.Finish(logging.CtxTime(ctx))
	logging.From(ctx).Info("done", "report", report)
	return report
}
