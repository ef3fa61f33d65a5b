package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . BigQuery RegistryClient ExclusiveLease FeatureFlags SettingsProvider Metrics JobWaiter JobTracker TaskRunner

import (
	"context"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
)

type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, data any) error

	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}

// RegistryClient calls the import API of the external container registry.
type RegistryClient interface {
	ImportRepository(ctx context.Context, path types.RepositoryPath, importType types.ImportType) (types.ImportResponse, error)
	ImportStatus(ctx context.Context, path types.RepositoryPath) (types.ExternalImportStatus, error)
	CancelRepositoryImport(ctx context.Context, path types.RepositoryPath, force bool) (*model.CancelResult, error)
}

// ExclusiveLease is a lock with expiry. TryObtain returns an empty token when another holder owns
// the key. The lease expires by itself after timeout even if the holder never cancels it.
type ExclusiveLease interface {
	TryObtain(ctx context.Context, key string, timeout time.Duration) (string, error)
	Cancel(ctx context.Context, key, token string) error
}

type FeatureFlags interface {
	Enabled(ctx context.Context, flag types.FeatureFlag) bool
}

// SettingsProvider resolves the current migration settings. Implementations must not cache across
// calls.
type SettingsProvider interface {
	Settings(ctx context.Context) (*model.MigrationSettings, error)
}

type Metrics interface {
	RecordRepositoryCount(ctx context.Context, state types.MigrationState, count int64)
	AddGuardAborts(ctx context.Context, n int64)
	AddStuckImportJobs(ctx context.Context, kind string, n int64)
}

// JobWaiter collects completion notifications of asynchronous jobs under a key.
type JobWaiter interface {
	// Wait blocks until remaining jobs of key notified or timeout passes, and returns the number of
	// jobs still outstanding.
	Wait(ctx context.Context, key string, remaining int, timeout time.Duration) (int, error)
	Notify(ctx context.Context, key string, jobID types.JobID) error
}

// JobTracker is the status oracle of job IDs. A job is running while its ID has not expired and
// has not been completed.
type JobTracker interface {
	Set(ctx context.Context, jobID types.JobID, ttl time.Duration) error
	// Expire extends the expiration of a known job ID. Unknown IDs are ignored.
	Expire(ctx context.Context, jobID types.JobID, ttl time.Duration) error
	Complete(ctx context.Context, jobID types.JobID) error
	Running(ctx context.Context, jobID types.JobID) (bool, error)
	CompletedJobIDs(ctx context.Context, jobIDs []types.JobID) ([]types.JobID, error)
}

// TaskRunner runs one-off tasks after a delay, detached from the caller. The task context keeps
// the clock of ctx but not its cancellation.
type TaskRunner interface {
	After(ctx context.Context, d time.Duration, name string, fn func(ctx context.Context))
}
