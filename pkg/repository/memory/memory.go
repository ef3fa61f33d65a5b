package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/repository"
)

type repositoryStore struct {
	mu      sync.RWMutex
	lastID  types.RepositoryID
	repos   map[types.RepositoryID]*model.Repository
	paths   map[types.RepositoryPath]types.RepositoryID
	batches map[types.BatchImportID]*model.BatchImport
}

// New creates a new in-memory repository store
func New() interfaces.RepositoryStore {
	return &repositoryStore{
		repos:   make(map[types.RepositoryID]*model.Repository),
		paths:   make(map[types.RepositoryPath]types.RepositoryID),
		batches: make(map[types.BatchImportID]*model.BatchImport),
	}
}

// Repository operations

func (r *repositoryStore) CreateRepository(ctx context.Context, repo *model.Repository) error {
	if repo.Path == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "repository path is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.paths[repo.Path]; exists {
		return goerr.Wrap(repository.ErrAlreadyExists, "repository path already exists",
			goerr.V("path", repo.Path),
		)
	}

	if repo.ID == 0 {
		repo.ID = r.lastID + 1
	}
	if _, exists := r.repos[repo.ID]; exists {
		return goerr.Wrap(repository.ErrAlreadyExists, "repository already exists",
			goerr.V("id", repo.ID),
		)
	}
	if repo.ID > r.lastID {
		r.lastID = repo.ID
	}
	if repo.MigrationState == "" {
		repo.MigrationState = types.MigrationStateDefault
	}

	r.repos[repo.ID] = repo.Copy()
	r.paths[repo.Path] = repo.ID
	return nil
}

func (r *repositoryStore) GetRepository(ctx context.Context, id types.RepositoryID) (*model.Repository, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	repo, exists := r.repos[id]
	if !exists {
		return nil, goerr.Wrap(repository.ErrNotFound, "repository not found",
			goerr.V("id", id),
		)
	}
	return repo.Copy(), nil
}

func (r *repositoryStore) GetRepositoryByPath(ctx context.Context, path types.RepositoryPath) (*model.Repository, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.paths[path]
	if !exists {
		return nil, goerr.Wrap(repository.ErrNotFound, "repository not found",
			goerr.V("path", path),
		)
	}
	return r.repos[id].Copy(), nil
}

func (r *repositoryStore) UpdateRepository(ctx context.Context, repo *model.Repository) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.repos[repo.ID]
	if !exists {
		return goerr.Wrap(repository.ErrNotFound, "repository not found",
			goerr.V("id", repo.ID),
		)
	}
	if current.Path != repo.Path {
		return goerr.Wrap(repository.ErrInvalidInput, "repository path can not be changed",
			goerr.V("id", repo.ID),
			goerr.V("path", repo.Path),
		)
	}

	r.repos[repo.ID] = repo.Copy()
	return nil
}

// Migration queries

// filter returns copies of matched repositories in ascending ID order. limit <= 0 means no limit.
func (r *repositoryStore) filter(limit int, match func(repo *model.Repository) bool) []*model.Repository {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*model.Repository
	for _, repo := range r.repos {
		if match(repo) {
			matched = append(matched, repo.Copy())
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID < matched[j].ID
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

func (r *repositoryStore) ListReadyForImport(ctx context.Context, createdBefore time.Time, limit int) ([]*model.Repository, error) {
	return r.filter(limit, func(repo *model.Repository) bool {
		if repo.MigrationState != types.MigrationStateDefault {
			return false
		}
		return createdBefore.IsZero() || repo.CreatedAt.Before(createdBefore)
	}), nil
}

func (r *repositoryStore) ListByMigrationState(ctx context.Context, state types.MigrationState, limit int) ([]*model.Repository, error) {
	return r.filter(limit, func(repo *model.Repository) bool {
		return repo.MigrationState == state
	}), nil
}

func (r *repositoryStore) ListStaleMigrations(ctx context.Context, before time.Time, limit int) ([]*model.Repository, error) {
	return r.filter(limit, func(repo *model.Repository) bool {
		return repository.IsStaleMigration(repo, before)
	}), nil
}

func (r *repositoryStore) GetLastStepCompleted(ctx context.Context) (*model.Repository, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var last *model.Repository
	for _, repo := range r.repos {
		doneAt := repo.LastImportStepDoneAt()
		if doneAt.IsZero() {
			continue
		}
		if last == nil || doneAt.After(last.LastImportStepDoneAt()) ||
			(doneAt.Equal(last.LastImportStepDoneAt()) && repo.ID > last.ID) {
			last = repo
		}
	}
	return last.Copy(), nil
}

func (r *repositoryStore) CountByMigrationStates(ctx context.Context, states []types.MigrationState) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, repo := range r.repos {
		if repo.MigrationState.In(states...) {
			count++
		}
	}
	return count, nil
}

func (r *repositoryStore) BatchCountByMigrationState(ctx context.Context, state types.MigrationState, batchSize int) (int64, error) {
	if batchSize <= 0 {
		return 0, goerr.Wrap(repository.ErrInvalidInput, "batch size must be positive",
			goerr.V("batchSize", batchSize),
		)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	// IDs may be sparse. Walking rows keeps the cost bound to the table size; batchSize only
	// shapes the SQL stores.
	var count int64
	for _, repo := range r.repos {
		if repo.MigrationState == state {
			count++
		}
	}
	return count, nil
}

// Batch import operations

func (r *repositoryStore) CreateBatchImport(ctx context.Context, batch *model.BatchImport) error {
	if batch.ID == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "batch import ID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.batches[batch.ID]; exists {
		return goerr.Wrap(repository.ErrAlreadyExists, "batch import already exists",
			goerr.V("id", batch.ID),
		)
	}
	r.batches[batch.ID] = batch.Copy()
	return nil
}

func (r *repositoryStore) GetBatchImport(ctx context.Context, id types.BatchImportID) (*model.BatchImport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	batch, exists := r.batches[id]
	if !exists {
		return nil, goerr.Wrap(repository.ErrNotFound, "batch import not found",
			goerr.V("id", id),
		)
	}
	return batch.Copy(), nil
}

func (r *repositoryStore) UpdateBatchImport(ctx context.Context, batch *model.BatchImport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.batches[batch.ID]; !exists {
		return goerr.Wrap(repository.ErrNotFound, "batch import not found",
			goerr.V("id", batch.ID),
		)
	}
	r.batches[batch.ID] = batch.Copy()
	return nil
}

func (r *repositoryStore) ListEnqueuedBatchImports(ctx context.Context) ([]*model.BatchImport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var batches []*model.BatchImport
	for _, batch := range r.batches {
		if batch.Status.Enqueued() {
			batches = append(batches, batch.Copy())
		}
	}
	sort.Slice(batches, func(i, j int) bool {
		return batches[i].CreatedAt.Before(batches[j].CreatedAt)
	})
	return batches, nil
}
