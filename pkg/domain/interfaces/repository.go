package interfaces

import (
	"context"
	"time"

	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
)

//go:generate moq -out ../mock/repository_store_mock.go -pkg mock . RepositoryStore

// RepositoryStore keeps repositories and the batch imports operating on them. List methods return
// records in ascending ID order unless noted.
type RepositoryStore interface {
	// Repository operations
	CreateRepository(ctx context.Context, repo *model.Repository) error
	GetRepository(ctx context.Context, id types.RepositoryID) (*model.Repository, error)
	GetRepositoryByPath(ctx context.Context, path types.RepositoryPath) (*model.Repository, error)
	UpdateRepository(ctx context.Context, repo *model.Repository) error

	// Migration queries
	ListReadyForImport(ctx context.Context, createdBefore time.Time, limit int) ([]*model.Repository, error)
	ListByMigrationState(ctx context.Context, state types.MigrationState, limit int) ([]*model.Repository, error)
	ListStaleMigrations(ctx context.Context, before time.Time, limit int) ([]*model.Repository, error)
	// GetLastStepCompleted returns the repository which completed a pipeline step most recently,
	// or nil if none did.
	GetLastStepCompleted(ctx context.Context) (*model.Repository, error)
	CountByMigrationStates(ctx context.Context, states []types.MigrationState) (int64, error)
	// BatchCountByMigrationState counts in ID ranges of batchSize and prefers a read replica.
	BatchCountByMigrationState(ctx context.Context, state types.MigrationState, batchSize int) (int64, error)

	// Batch import operations
	CreateBatchImport(ctx context.Context, batch *model.BatchImport) error
	GetBatchImport(ctx context.Context, id types.BatchImportID) (*model.BatchImport, error)
	UpdateBatchImport(ctx context.Context, batch *model.BatchImport) error
	ListEnqueuedBatchImports(ctx context.Context) ([]*model.BatchImport, error)
}
