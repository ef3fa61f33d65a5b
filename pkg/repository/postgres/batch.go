package postgres

import (
	"context"

	"github.com/lib/pq"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/repository"
)

const batchColumns = `id, paths, stage, status, job_id, timeout_strategy, succeeded, failed, error, created_at, updated_at`

func toStrings(paths []types.RepositoryPath) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.String()
	}
	return out
}

func toPaths(values []string) []types.RepositoryPath {
	if len(values) == 0 {
		return nil
	}
	out := make([]types.RepositoryPath, len(values))
	for i, v := range values {
		out[i] = types.RepositoryPath(v)
	}
	return out
}

func scanBatchImport(row rowScanner) (*model.BatchImport, error) {
	var (
		batch                    model.BatchImport
		paths, succeeded, failed []string
	)
	if err := row.Scan(
		&batch.ID, pq.Array(&paths), &batch.Stage, &batch.Status, &batch.JobID, &batch.TimeoutStrategy,
		pq.Array(&succeeded), pq.Array(&failed), &batch.Error, &batch.CreatedAt, &batch.UpdatedAt,
	); err != nil {
		return nil, err
	}
	batch.Paths = toPaths(paths)
	batch.Succeeded = toPaths(succeeded)
	batch.Failed = toPaths(failed)
	batch.CreatedAt = batch.CreatedAt.UTC()
	batch.UpdatedAt = batch.UpdatedAt.UTC()
	return &batch, nil
}

func (s *Store) CreateBatchImport(ctx context.Context, batch *model.BatchImport) error {
	if batch.ID == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "batch import ID is empty")
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO batch_imports (`+batchColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		batch.ID, pq.Array(toStrings(batch.Paths)), batch.Stage, batch.Status, batch.JobID, batch.TimeoutStrategy,
		pq.Array(toStrings(batch.Succeeded)), pq.Array(toStrings(batch.Failed)), batch.Error, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return goerr.Wrap(repository.ErrAlreadyExists, "batch import already exists", goerr.V("id", batch.ID))
		}
		return goerr.Wrap(err, "failed to create batch import", goerr.V("id", batch.ID))
	}
	return nil
}

func (s *Store) GetBatchImport(ctx context.Context, id types.BatchImportID) (*model.BatchImport, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+batchColumns+` FROM batch_imports WHERE id = $1`, id)
	batch, err := scanBatchImport(row)
	if err != nil {
		return nil, wrapQueryError(err, "failed to get batch import", goerr.V("id", id))
	}
	return batch, nil
}

func (s *Store) UpdateBatchImport(ctx context.Context, batch *model.BatchImport) error {
	result, err := s.db.ExecContext(ctx, `UPDATE batch_imports SET
		stage = $2,
		status = $3,
		job_id = $4,
		succeeded = $5,
		failed = $6,
		error = $7,
		updated_at = $8
		WHERE id = $1`,
		batch.ID, batch.Stage, batch.Status, batch.JobID,
		pq.Array(toStrings(batch.Succeeded)), pq.Array(toStrings(batch.Failed)), batch.Error, batch.UpdatedAt,
	)
	if err != nil {
		return goerr.Wrap(err, "failed to update batch import", goerr.V("id", batch.ID))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return goerr.Wrap(err, "failed to get affected rows", goerr.V("id", batch.ID))
	}
	if affected == 0 {
		return goerr.Wrap(repository.ErrNotFound, "batch import not found", goerr.V("id", batch.ID))
	}
	return nil
}

func (s *Store) ListEnqueuedBatchImports(ctx context.Context) ([]*model.BatchImport, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+batchColumns+` FROM batch_imports
		WHERE status IN ($1, $2)
		ORDER BY created_at ASC`,
		types.BatchStatusScheduled, types.BatchStatusStarted,
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query batch imports")
	}
	defer rows.Close()

	var batches []*model.BatchImport
	for rows.Next() {
		batch, err := scanBatchImport(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan batch import")
		}
		batches = append(batches, batch)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate batch imports")
	}
	return batches, nil
}
