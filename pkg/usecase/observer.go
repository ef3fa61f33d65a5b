package usecase

import (
	"context"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/utils/errutil"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// RunObserver samples the number of repositories in every migration state.
func (x *UseCase) RunObserver(ctx context.Context) (*model.WorkerReport, error) {
	ctx, report := startWorker(ctx, types.WorkerObserver)

	settings, err := x.clients.Settings().Settings(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve migration settings")
	}
	report.Set("migration_enabled", settings.Enabled)
	if !settings.Enabled {
		return finishWorker(ctx, report), nil
	}

	counts := make([]*int64, len(types.MigrationStates))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(x.observerParallel)
	for i, state := range types.MigrationStates {
		eg.Go(func() error {
			n, err := x.clients.RepositoryStore().BatchCountByMigrationState(egCtx, state, observerBatchSize)
			if err != nil {
				errutil.HandleError(egCtx, "failed to count repositories", goerr.Wrap(err, "count repositories",
					goerr.V("state", state),
				))
				return nil
			}
			counts[i] = &n
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to count repositories")
	}

	snapshot := model.NewStateCountSnapshot(report.StartedAt)
	for i, state := range types.MigrationStates {
		if counts[i] == nil {
			continue
		}
		n := *counts[i]
		report.Set(state.String()+"_count", n)
		x.clients.Metrics().RecordRepositoryCount(ctx, state, n)
		snapshot.Counts = append(snapshot.Counts, model.StateCount{State: state.String(), Count: n})
	}

	if bq := x.clients.BigQuery(); bq != nil && len(snapshot.Counts) > 0 {
		if err := exportStateCountSnapshot(ctx, bq, snapshot); err != nil {
			errutil.HandleError(ctx, "failed to export state counts", err)
		} else {
			report.Set("snapshot_id", snapshot.ID)
		}
	}

	return finishWorker(ctx, report), nil
}

func exportStateCountSnapshot(ctx context.Context, bq interfaces.BigQuery, snapshot *model.StateCountSnapshot) error {
	schema, err := prepareSnapshotTable(ctx, bq, snapshot)
	if err != nil {
		return err
	}

	record := &model.StateCountRawRecord{
		StateCountSnapshot: *snapshot,
		Timestamp:          snapshot.Timestamp.UnixMicro(),
	}
	if err := bq.Insert(ctx, schema, record); err != nil {
		return goerr.Wrap(err, "failed to insert state count snapshot", goerr.V("id", snapshot.ID))
	}

	logging.From(ctx).Debug("exported state count snapshot", "id", snapshot.ID)
	return nil
}

// prepareSnapshotTable creates the table on first use and widens its schema when the snapshot
// gained fields. It returns the schema rows must follow.
func prepareSnapshotTable(ctx context.Context, bq interfaces.BigQuery, snapshot *model.StateCountSnapshot) (bigquery.Schema, error) {
	schema, err := bqs.Infer(snapshot)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to infer snapshot schema")
	}

	md, err := bq.GetMetadata(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get snapshot table metadata")
	}

	if md == nil {
		if err := bq.CreateTable(ctx, &bigquery.TableMetadata{
			Schema: schema,
			TimePartitioning: &bigquery.TimePartitioning{
				Field: "timestamp",
				Type:  bigquery.DayPartitioningType,
			},
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to create snapshot table")
		}
		return schema, nil
	}

	if bqs.Equal(md.Schema, schema) {
		return schema, nil
	}

	merged, err := bqs.Merge(md.Schema, schema)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to merge snapshot schema")
	}
	if err := bq.UpdateTable(ctx, bigquery.TableMetadataToUpdate{Schema: merged}, md.ETag); err != nil {
		return nil, goerr.Wrap(err, "failed to update snapshot table")
	}
	return merged, nil
}
