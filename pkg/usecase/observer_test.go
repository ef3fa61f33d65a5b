package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/regmig/pkg/domain/mock"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/infra"
	"github.com/m-mizutani/regmig/pkg/usecase"
)

func seedObserverRepos(t *testing.T, f *fixture) {
	states := []types.MigrationState{
		types.MigrationStateDefault,
		types.MigrationStateDefault,
		types.MigrationStateImporting,
		types.MigrationStateImportDone,
		types.MigrationStateImportDone,
		types.MigrationStateImportDone,
	}
	for i, state := range states {
		f.addRepo(t, &model.Repository{
			Path:           types.RepositoryPath("group/observed-" + string(rune('a'+i))),
			MigrationState: state,
		})
	}
}

func TestRunObserver(t *testing.T) {
	f := newFixture(t)
	seedObserverRepos(t, f)

	var mu sync.Mutex
	recorded := map[types.MigrationState]int64{}
	f.metrics.RecordRepositoryCountFunc = func(ctx context.Context, state types.MigrationState, count int64) {
		mu.Lock()
		defer mu.Unlock()
		recorded[state] = count
	}

	report := gt.R1(f.usecase().RunObserver(f.ctx())).NoError(t)

	gt.V(t, report.Get("default_count")).Equal(int64(2))
	gt.V(t, report.Get("importing_count")).Equal(int64(1))
	gt.V(t, report.Get("import_done_count")).Equal(int64(3))
	gt.V(t, report.Get("import_skipped_count")).Equal(int64(0))

	gt.V(t, len(recorded)).Equal(len(types.MigrationStates))
	gt.V(t, recorded[types.MigrationStateImportDone]).Equal(int64(3))
}

func TestRunObserver_Disabled(t *testing.T) {
	f := newFixture(t)
	f.settings.Enabled = false
	seedObserverRepos(t, f)

	report := gt.R1(f.usecase().RunObserver(f.ctx())).NoError(t)
	gt.V(t, report.Get("migration_enabled")).Equal(false)
	gt.V(t, report.Get("default_count")).Equal(nil)
	gt.A(t, f.metrics.RecordRepositoryCountCalls()).Length(0)
}

func TestRunObserver_CountFailure(t *testing.T) {
	f := newFixture(t)
	seedObserverRepos(t, f)
	mem := f.store
	f.store = &mock.RepositoryStoreMock{
		BatchCountByMigrationStateFunc: func(ctx context.Context, state types.MigrationState, batchSize int) (int64, error) {
			gt.V(t, batchSize).Equal(50000)
			if state == types.MigrationStateImporting {
				return 0, errors.New("replica is lagging")
			}
			return mem.BatchCountByMigrationState(ctx, state, batchSize)
		},
	}

	report := gt.R1(f.usecase().RunObserver(f.ctx())).NoError(t)
	gt.V(t, report.Get("importing_count")).Equal(nil)
	gt.V(t, report.Get("default_count")).Equal(int64(2))
	gt.A(t, f.metrics.RecordRepositoryCountCalls()).Length(len(types.MigrationStates) - 1)
}

func TestRunObserver_BigQuery(t *testing.T) {
	t.Run("creates table and inserts snapshot", func(t *testing.T) {
		f := newFixture(t)
		seedObserverRepos(t, f)

		var inserted *model.StateCountRawRecord
		bq := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return nil, nil
			},
			CreateTableFunc: func(ctx context.Context, md *bigquery.TableMetadata) error {
				gt.V(t, md.TimePartitioning.Field).Equal("timestamp")
				return nil
			},
			InsertFunc: func(ctx context.Context, schema bigquery.Schema, data any) error {
				record, ok := data.(*model.StateCountRawRecord)
				gt.True(t, ok)
				inserted = record
				return nil
			},
		}
		uc := usecase.New(f.clients(infra.WithBigQuery(bq)))

		report := gt.R1(uc.RunObserver(f.ctx())).NoError(t)
		gt.A(t, bq.CreateTableCalls()).Length(1)
		gt.A(t, bq.UpdateTableCalls()).Length(0)
		gt.V(t, inserted.Timestamp).Equal(baseTime.UnixMicro())
		gt.A(t, inserted.Counts).Length(len(types.MigrationStates))
		gt.V(t, report.Get("snapshot_id")).Equal(inserted.ID)
	})

	t.Run("keeps table with the same schema", func(t *testing.T) {
		f := newFixture(t)
		schema := gt.R1(bqs.Infer(&model.StateCountSnapshot{})).NoError(t)
		bq := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return &bigquery.TableMetadata{Schema: schema}, nil
			},
			InsertFunc: func(ctx context.Context, schema bigquery.Schema, data any) error {
				return nil
			},
		}
		uc := usecase.New(f.clients(infra.WithBigQuery(bq)))

		gt.R1(uc.RunObserver(f.ctx())).NoError(t)
		gt.A(t, bq.CreateTableCalls()).Length(0)
		gt.A(t, bq.UpdateTableCalls()).Length(0)
		gt.A(t, bq.InsertCalls()).Length(1)
	})

	t.Run("export failure does not fail the worker", func(t *testing.T) {
		f := newFixture(t)
		bq := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return nil, errors.New("permission denied")
			},
		}
		uc := usecase.New(f.clients(infra.WithBigQuery(bq)))

		report := gt.R1(uc.RunObserver(f.ctx())).NoError(t)
		gt.V(t, report.Get("snapshot_id")).Equal(nil)
		gt.A(t, bq.InsertCalls()).Length(0)
	})
}
