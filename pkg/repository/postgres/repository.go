package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/repository"
)

const repositoryColumns = `id, path, migration_state, tags_count, created_at, updated_at,
	migration_pre_import_started_at, migration_pre_import_done_at,
	migration_import_started_at, migration_import_done_at,
	migration_aborted_at, migration_aborted_in_state,
	migration_skipped_at, migration_skipped_reason, migration_retries_count`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRepository(row rowScanner) (*model.Repository, error) {
	var (
		repo                                     model.Repository
		preStarted, preDone, impStarted, impDone sql.NullTime
		abortedAt, skippedAt                     sql.NullTime
	)
	if err := row.Scan(
		&repo.ID, &repo.Path, &repo.MigrationState, &repo.TagsCount, &repo.CreatedAt, &repo.UpdatedAt,
		&preStarted, &preDone,
		&impStarted, &impDone,
		&abortedAt, &repo.MigrationAbortedInState,
		&skippedAt, &repo.MigrationSkippedReason, &repo.MigrationRetriesCount,
	); err != nil {
		return nil, err
	}

	repo.CreatedAt = repo.CreatedAt.UTC()
	repo.UpdatedAt = repo.UpdatedAt.UTC()
	repo.MigrationPreImportStartedAt = timeOf(preStarted)
	repo.MigrationPreImportDoneAt = timeOf(preDone)
	repo.MigrationImportStartedAt = timeOf(impStarted)
	repo.MigrationImportDoneAt = timeOf(impDone)
	repo.MigrationAbortedAt = timeOf(abortedAt)
	repo.MigrationSkippedAt = timeOf(skippedAt)
	return &repo, nil
}

func (s *Store) queryRepositories(ctx context.Context, query string, args ...any) ([]*model.Repository, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query repositories")
	}
	defer rows.Close()

	var repos []*model.Repository
	for rows.Next() {
		repo, err := scanRepository(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan repository")
		}
		repos = append(repos, repo)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate repositories")
	}
	return repos, nil
}

// Repository operations

func (s *Store) CreateRepository(ctx context.Context, repo *model.Repository) error {
	if repo.Path == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "repository path is empty")
	}
	if repo.MigrationState == "" {
		repo.MigrationState = types.MigrationStateDefault
	}

	query := `INSERT INTO repositories (path, migration_state, tags_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	args := []any{repo.Path, repo.MigrationState, repo.TagsCount, repo.CreatedAt, repo.UpdatedAt}
	if repo.ID != 0 {
		query = `INSERT INTO repositories (id, path, migration_state, tags_count, created_at, updated_at)
			VALUES ($6, $1, $2, $3, $4, $5)
			RETURNING id`
		args = append(args, repo.ID)
	}

	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&repo.ID); err != nil {
		if isUniqueViolation(err) {
			return goerr.Wrap(repository.ErrAlreadyExists, "repository already exists",
				goerr.V("path", repo.Path),
			)
		}
		return goerr.Wrap(err, "failed to create repository", goerr.V("path", repo.Path))
	}
	return nil
}

func (s *Store) GetRepository(ctx context.Context, id types.RepositoryID) (*model.Repository, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+repositoryColumns+` FROM repositories WHERE id = $1`, id)
	repo, err := scanRepository(row)
	if err != nil {
		return nil, wrapQueryError(err, "failed to get repository", goerr.V("id", id))
	}
	return repo, nil
}

func (s *Store) GetRepositoryByPath(ctx context.Context, path types.RepositoryPath) (*model.Repository, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+repositoryColumns+` FROM repositories WHERE path = $1`, path)
	repo, err := scanRepository(row)
	if err != nil {
		return nil, wrapQueryError(err, "failed to get repository", goerr.V("path", path))
	}
	return repo, nil
}

// UpdateRepository writes the migration columns. Path and creation time are immutable.
func (s *Store) UpdateRepository(ctx context.Context, repo *model.Repository) error {
	query := `UPDATE repositories SET
		migration_state = $2,
		tags_count = $3,
		updated_at = $4,
		migration_pre_import_started_at = $5,
		migration_pre_import_done_at = $6,
		migration_import_started_at = $7,
		migration_import_done_at = $8,
		migration_aborted_at = $9,
		migration_aborted_in_state = $10,
		migration_skipped_at = $11,
		migration_skipped_reason = $12,
		migration_retries_count = $13
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		repo.ID,
		repo.MigrationState,
		repo.TagsCount,
		repo.UpdatedAt,
		nullTime(repo.MigrationPreImportStartedAt),
		nullTime(repo.MigrationPreImportDoneAt),
		nullTime(repo.MigrationImportStartedAt),
		nullTime(repo.MigrationImportDoneAt),
		nullTime(repo.MigrationAbortedAt),
		repo.MigrationAbortedInState,
		nullTime(repo.MigrationSkippedAt),
		repo.MigrationSkippedReason,
		repo.MigrationRetriesCount,
	)
	if err != nil {
		return goerr.Wrap(err, "failed to update repository", goerr.V("id", repo.ID))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return goerr.Wrap(err, "failed to get affected rows", goerr.V("id", repo.ID))
	}
	if affected == 0 {
		return goerr.Wrap(repository.ErrNotFound, "repository not found", goerr.V("id", repo.ID))
	}
	return nil
}

// Migration queries

func (s *Store) ListReadyForImport(ctx context.Context, createdBefore time.Time, limit int) ([]*model.Repository, error) {
	return s.queryRepositories(ctx, `SELECT `+repositoryColumns+` FROM repositories
		WHERE migration_state = $1 AND ($2::timestamptz IS NULL OR created_at < $2)
		ORDER BY id ASC
		LIMIT $3`,
		types.MigrationStateDefault, nullTime(createdBefore), limit)
}

func (s *Store) ListByMigrationState(ctx context.Context, state types.MigrationState, limit int) ([]*model.Repository, error) {
	return s.queryRepositories(ctx, `SELECT `+repositoryColumns+` FROM repositories
		WHERE migration_state = $1
		ORDER BY id ASC
		LIMIT $2`,
		state, limit)
}

func (s *Store) ListStaleMigrations(ctx context.Context, before time.Time, limit int) ([]*model.Repository, error) {
	return s.queryRepositories(ctx, `SELECT `+repositoryColumns+` FROM repositories
		WHERE (migration_state = $1 AND migration_pre_import_started_at < $4)
		   OR (migration_state = $2 AND migration_pre_import_done_at < $4)
		   OR (migration_state = $3 AND migration_import_started_at < $4)
		ORDER BY id ASC
		LIMIT $5`,
		types.MigrationStatePreImporting,
		types.MigrationStatePreImportDone,
		types.MigrationStateImporting,
		before, limit)
}

func (s *Store) GetLastStepCompleted(ctx context.Context) (*model.Repository, error) {
	repos, err := s.queryRepositories(ctx, `SELECT `+repositoryColumns+` FROM repositories
		WHERE GREATEST(migration_pre_import_done_at, migration_import_done_at, migration_aborted_at, migration_skipped_at) IS NOT NULL
		ORDER BY GREATEST(migration_pre_import_done_at, migration_import_done_at, migration_aborted_at, migration_skipped_at) DESC, id DESC
		LIMIT 1`)
	if err != nil {
		return nil, err
	}
	if len(repos) == 0 {
		return nil, nil
	}
	return repos[0], nil
}

func (s *Store) CountByMigrationStates(ctx context.Context, states []types.MigrationState) (int64, error) {
	names := make([]string, len(states))
	for i, st := range states {
		names[i] = st.String()
	}

	var count int64
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM repositories WHERE migration_state = ANY($1)`,
		pq.Array(names),
	).Scan(&count); err != nil {
		return 0, goerr.Wrap(err, "failed to count repositories", goerr.V("states", states))
	}
	return count, nil
}

// BatchCountByMigrationState counts by walking the primary key in ranges of batchSize so that no
// single statement scans the whole table. Each range starts at the next existing id, so gaps in
// ids are skipped.
func (s *Store) BatchCountByMigrationState(ctx context.Context, state types.MigrationState, batchSize int) (int64, error) {
	if batchSize <= 0 {
		return 0, goerr.Wrap(repository.ErrInvalidInput, "batch size must be positive",
			goerr.V("batchSize", batchSize),
		)
	}

	var total int64
	err := s.readWithReplica(ctx, func(db *sql.DB) error {
		total = 0

		var from int64
		for {
			var start sql.NullInt64
			if err := db.QueryRowContext(ctx,
				`SELECT MIN(id) FROM repositories WHERE id >= $1`, from,
			).Scan(&start); err != nil {
				return goerr.Wrap(err, "failed to find next id", goerr.V("from", from))
			}
			if !start.Valid {
				return nil
			}

			end := start.Int64 + int64(batchSize)
			var n int64
			if err := db.QueryRowContext(ctx,
				`SELECT COUNT(*) FROM repositories WHERE id >= $1 AND id < $2 AND migration_state = $3`,
				start.Int64, end, state,
			).Scan(&n); err != nil {
				return goerr.Wrap(err, "failed to count batch", goerr.V("start", start.Int64))
			}
			total += n
			from = end
		}
	})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to batch count repositories", goerr.V("state", state))
	}
	return total, nil
}
