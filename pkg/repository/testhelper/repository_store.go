package testhelper

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/repository"
)

// TestAll runs all test cases for RepositoryStore
// This is the main entry point for testing any RepositoryStore implementation. Test data uses
// unique paths and timestamps far from the present, so it can run against a shared database.
func TestAll(t *testing.T, store interfaces.RepositoryStore) {
	t.Run("RepositoryCRUD", func(t *testing.T) {
		TestRepositoryCRUD(t, store)
	})
	t.Run("ReadyForImport", func(t *testing.T) {
		TestReadyForImport(t, store)
	})
	t.Run("StaleMigrations", func(t *testing.T) {
		TestStaleMigrations(t, store)
	})
	t.Run("LastStepCompleted", func(t *testing.T) {
		TestLastStepCompleted(t, store)
	})
	t.Run("CountByMigrationStates", func(t *testing.T) {
		TestCountByMigrationStates(t, store)
	})
	t.Run("BatchImportCRUD", func(t *testing.T) {
		TestBatchImportCRUD(t, store)
	})
}

func newPath(prefix string) types.RepositoryPath {
	return types.RepositoryPath(fmt.Sprintf("%s-%s/app", prefix, uuid.New().String()[:8]))
}

func createRepository(t *testing.T, store interfaces.RepositoryStore, repo *model.Repository) *model.Repository {
	t.Helper()
	gt.NoError(t, store.CreateRepository(context.Background(), repo))
	gt.True(t, repo.ID > 0)
	return repo
}

func containsID(repos []*model.Repository, id types.RepositoryID) bool {
	for _, r := range repos {
		if r.ID == id {
			return true
		}
	}
	return false
}

// TestRepositoryCRUD tests basic CRUD operations for Repository
func TestRepositoryCRUD(t *testing.T, store interfaces.RepositoryStore) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	repo := createRepository(t, store, &model.Repository{
		Path:           newPath("crud"),
		MigrationState: types.MigrationStateDefault,
		TagsCount:      12,
		CreatedAt:      now,
		UpdatedAt:      now,
	})

	retrieved, err := store.GetRepository(ctx, repo.ID)
	gt.NoError(t, err)
	gt.V(t, retrieved.Path).Equal(repo.Path)
	gt.V(t, retrieved.TagsCount).Equal(12)
	gt.V(t, retrieved.MigrationState).Equal(types.MigrationStateDefault)
	gt.True(t, retrieved.CreatedAt.Equal(now))

	byPath, err := store.GetRepositoryByPath(ctx, repo.Path)
	gt.NoError(t, err)
	gt.V(t, byPath.ID).Equal(repo.ID)

	// Duplicated path
	err = store.CreateRepository(ctx, &model.Repository{Path: repo.Path, CreatedAt: now})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrAlreadyExists))

	// Update through a transition
	gt.NoError(t, retrieved.StartPreImport(now.Add(time.Minute)))
	gt.NoError(t, store.UpdateRepository(ctx, retrieved))

	updated, err := store.GetRepository(ctx, repo.ID)
	gt.NoError(t, err)
	gt.V(t, updated.MigrationState).Equal(types.MigrationStatePreImporting)
	gt.True(t, updated.MigrationPreImportStartedAt.Equal(now.Add(time.Minute)))

	// Not found
	_, err = store.GetRepositoryByPath(ctx, newPath("missing"))
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))

	missing := &model.Repository{ID: repo.ID + 1000000, Path: newPath("missing")}
	err = store.UpdateRepository(ctx, missing)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

// TestReadyForImport tests candidate selection of the enqueuer
func TestReadyForImport(t *testing.T, store interfaces.RepositoryStore) {
	ctx := context.Background()
	base := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

	older := createRepository(t, store, &model.Repository{
		Path:      newPath("ready"),
		CreatedAt: base,
		UpdatedAt: base,
	})
	newer := createRepository(t, store, &model.Repository{
		Path:      newPath("ready"),
		CreatedAt: base.Add(48 * time.Hour),
		UpdatedAt: base,
	})
	started := createRepository(t, store, &model.Repository{
		Path:      newPath("ready"),
		CreatedAt: base,
		UpdatedAt: base,
	})
	gt.NoError(t, started.StartPreImport(base))
	gt.NoError(t, store.UpdateRepository(ctx, started))

	repos, err := store.ListReadyForImport(ctx, base.Add(24*time.Hour), 1000)
	gt.NoError(t, err)
	gt.True(t, containsID(repos, older.ID))
	gt.False(t, containsID(repos, newer.ID))
	gt.False(t, containsID(repos, started.ID))

	for i := 1; i < len(repos); i++ {
		gt.True(t, repos[i-1].ID < repos[i].ID)
	}

	limited, err := store.ListReadyForImport(ctx, time.Time{}, 1)
	gt.NoError(t, err)
	gt.A(t, limited).Length(1)

	byState, err := store.ListByMigrationState(ctx, types.MigrationStatePreImporting, 100000)
	gt.NoError(t, err)
	gt.True(t, containsID(byState, started.ID))
	gt.False(t, containsID(byState, older.ID))
}

// TestStaleMigrations tests the lookup of the guard
func TestStaleMigrations(t *testing.T, store interfaces.RepositoryStore) {
	ctx := context.Background()
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	stalePre := createRepository(t, store, &model.Repository{Path: newPath("stale"), CreatedAt: base})
	gt.NoError(t, stalePre.StartPreImport(base))
	gt.NoError(t, store.UpdateRepository(ctx, stalePre))

	staleDone := createRepository(t, store, &model.Repository{Path: newPath("stale"), CreatedAt: base})
	gt.NoError(t, staleDone.StartPreImport(base))
	gt.NoError(t, staleDone.FinishPreImport(base.Add(time.Minute)))
	gt.NoError(t, store.UpdateRepository(ctx, staleDone))

	staleImport := createRepository(t, store, &model.Repository{Path: newPath("stale"), CreatedAt: base})
	gt.NoError(t, staleImport.StartPreImport(base))
	gt.NoError(t, staleImport.FinishPreImport(base))
	gt.NoError(t, staleImport.StartImport(base.Add(2*time.Minute)))
	gt.NoError(t, store.UpdateRepository(ctx, staleImport))

	fresh := createRepository(t, store, &model.Repository{Path: newPath("stale"), CreatedAt: base})
	gt.NoError(t, fresh.StartPreImport(base.Add(time.Hour)))
	gt.NoError(t, store.UpdateRepository(ctx, fresh))

	aborted := createRepository(t, store, &model.Repository{Path: newPath("stale"), CreatedAt: base})
	gt.NoError(t, aborted.StartPreImport(base))
	gt.NoError(t, aborted.AbortImport(base, 3))
	gt.NoError(t, store.UpdateRepository(ctx, aborted))

	repos, err := store.ListStaleMigrations(ctx, base.Add(30*time.Minute), 100000)
	gt.NoError(t, err)
	gt.True(t, containsID(repos, stalePre.ID))
	gt.True(t, containsID(repos, staleDone.ID))
	gt.True(t, containsID(repos, staleImport.ID))
	gt.False(t, containsID(repos, fresh.ID))
	gt.False(t, containsID(repos, aborted.ID))
}

// TestLastStepCompleted tests the lookup used for the enqueue waiting time
func TestLastStepCompleted(t *testing.T, store interfaces.RepositoryStore) {
	ctx := context.Background()
	future := time.Now().UTC().Add(50 * 365 * 24 * time.Hour).Truncate(time.Millisecond)

	first := createRepository(t, store, &model.Repository{Path: newPath("last"), CreatedAt: future})
	gt.NoError(t, first.StartPreImport(future))
	gt.NoError(t, first.FinishPreImport(future.Add(time.Minute)))
	gt.NoError(t, store.UpdateRepository(ctx, first))

	second := createRepository(t, store, &model.Repository{Path: newPath("last"), CreatedAt: future})
	gt.NoError(t, second.SkipImport(types.SkipReasonTooManyTags, future.Add(2*time.Minute)))
	gt.NoError(t, store.UpdateRepository(ctx, second))

	last, err := store.GetLastStepCompleted(ctx)
	gt.NoError(t, err)
	gt.V(t, last).NotEqual(nil)
	gt.V(t, last.ID).Equal(second.ID)
	gt.True(t, last.LastImportStepDoneAt().Equal(future.Add(2*time.Minute)))
}

// TestCountByMigrationStates tests both count paths
func TestCountByMigrationStates(t *testing.T, store interfaces.RepositoryStore) {
	ctx := context.Background()
	now := time.Now().UTC()

	beforeInFlight, err := store.CountByMigrationStates(ctx, types.InFlightMigrationStates)
	gt.NoError(t, err)
	beforeSkipped, err := store.BatchCountByMigrationState(ctx, types.MigrationStateImportSkipped, 2)
	gt.NoError(t, err)

	for i := 0; i < 3; i++ {
		repo := createRepository(t, store, &model.Repository{Path: newPath("count"), CreatedAt: now})
		gt.NoError(t, repo.SkipImport(types.SkipReasonTooManyTags, now))
		gt.NoError(t, store.UpdateRepository(ctx, repo))
	}
	importing := createRepository(t, store, &model.Repository{Path: newPath("count"), CreatedAt: now})
	gt.NoError(t, importing.StartPreImport(now))
	gt.NoError(t, store.UpdateRepository(ctx, importing))

	afterInFlight, err := store.CountByMigrationStates(ctx, types.InFlightMigrationStates)
	gt.NoError(t, err)
	gt.V(t, afterInFlight-beforeInFlight).Equal(int64(1))

	afterSkipped, err := store.BatchCountByMigrationState(ctx, types.MigrationStateImportSkipped, 2)
	gt.NoError(t, err)
	gt.V(t, afterSkipped-beforeSkipped).Equal(int64(3))

	_, err = store.BatchCountByMigrationState(ctx, types.MigrationStateImportSkipped, 0)
	gt.Error(t, err)
}

// TestBatchImportCRUD tests basic CRUD operations for BatchImport
func TestBatchImportCRUD(t *testing.T, store interfaces.RepositoryStore) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	batch := &model.BatchImport{
		ID:              types.NewBatchImportID(),
		Paths:           []types.RepositoryPath{newPath("batch"), newPath("batch")},
		Stage:           types.BatchStagePreImport,
		Status:          types.BatchStatusScheduled,
		TimeoutStrategy: types.TimeoutStrategyOptimistic,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	gt.NoError(t, store.CreateBatchImport(ctx, batch))

	err := store.CreateBatchImport(ctx, batch)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrAlreadyExists))

	retrieved, err := store.GetBatchImport(ctx, batch.ID)
	gt.NoError(t, err)
	gt.A(t, retrieved.Paths).Length(2)
	gt.V(t, retrieved.Status).Equal(types.BatchStatusScheduled)
	gt.V(t, retrieved.TimeoutStrategy).Equal(types.TimeoutStrategyOptimistic)

	enqueued, err := store.ListEnqueuedBatchImports(ctx)
	gt.NoError(t, err)
	gt.True(t, containsBatch(enqueued, batch.ID))

	retrieved.Status = types.BatchStatusStarted
	retrieved.JobID = types.NewJobID()
	retrieved.Succeeded = []types.RepositoryPath{batch.Paths[0]}
	gt.NoError(t, store.UpdateBatchImport(ctx, retrieved))

	updated, err := store.GetBatchImport(ctx, batch.ID)
	gt.NoError(t, err)
	gt.V(t, updated.JobID).Equal(retrieved.JobID)
	gt.A(t, updated.Succeeded).Length(1)

	updated.MarkFailed("timeout", now)
	gt.NoError(t, store.UpdateBatchImport(ctx, updated))

	enqueued, err = store.ListEnqueuedBatchImports(ctx)
	gt.NoError(t, err)
	gt.False(t, containsBatch(enqueued, batch.ID))

	_, err = store.GetBatchImport(ctx, types.NewBatchImportID())
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))

	err = store.UpdateBatchImport(ctx, &model.BatchImport{ID: types.NewBatchImportID()})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

func containsBatch(batches []*model.BatchImport, id types.BatchImportID) bool {
	for _, b := range batches {
		if b.ID == id {
			return true
		}
	}
	return false
}
