package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

const importRetryDelay = 100 * time.Millisecond

func (x *UseCase) saveRepository(ctx context.Context, repo *model.Repository) error {
	if err := x.clients.RepositoryStore().UpdateRepository(ctx, repo); err != nil {
		return goerr.Wrap(err, "failed to save repository",
			goerr.V("repository_id", repo.ID),
			goerr.V("state", repo.MigrationState),
		)
	}
	return nil
}

// apply runs a state transition on repo and saves the result. Nothing is saved if the transition
// is not allowed.
func (x *UseCase) apply(ctx context.Context, repo *model.Repository, transition func(now time.Time) error) error {
	if err := transition(logging.CtxTime(ctx)); err != nil {
		return err
	}
	return x.saveRepository(ctx, repo)
}

func (x *UseCase) abortImport(ctx context.Context, repo *model.Repository, settings *model.MigrationSettings) error {
	return x.apply(ctx, repo, func(now time.Time) error {
		return repo.AbortImport(now, settings.MaxRetries)
	})
}

// tryImport asks the registry to run a stage for repo. It returns true if the registry accepted
// the request. Any other answer is applied to repo as a transition.
func (x *UseCase) tryImport(ctx context.Context, repo *model.Repository, importType types.ImportType, settings *model.MigrationSettings) (bool, error) {
	logger := logging.From(ctx).With("repository_id", repo.ID, "path", repo.Path, "import_type", importType)

	for try := 1; ; try++ {
		resp, err := x.clients.Registry().ImportRepository(ctx, repo.Path, importType)
		if err != nil {
			return false, goerr.Wrap(err, "failed to request import",
				goerr.V("repository_id", repo.ID),
				goerr.V("import_type", importType),
			)
		}

		switch resp {
		case types.ImportResponseOK:
			return true, nil

		case types.ImportResponseNotFound:
			return false, x.apply(ctx, repo, func(now time.Time) error {
				return repo.FinishImportAs(types.SkipReasonNotFound, now)
			})

		case types.ImportResponseAlreadyImported:
			return false, x.apply(ctx, repo, func(now time.Time) error {
				return repo.FinishImportAs(types.SkipReasonNativeImport, now)
			})

		case types.ImportResponseTooManyImports:
			if try <= settings.StartMaxRetries {
				logger.Debug("registry is busy, retrying import", "try", try)
				if err := logging.Sleep(ctx, time.Duration(try)*importRetryDelay); err != nil {
					return false, goerr.Wrap(err, "interrupted while waiting to retry import")
				}
				continue
			}
			logger.Warn("registry stayed busy, aborting import", "tries", try)
			return false, x.abortImport(ctx, repo, settings)

		default:
			logger.Warn("registry refused import", "response", resp)
			return false, x.abortImport(ctx, repo, settings)
		}
	}
}

func (x *UseCase) startPreImport(ctx context.Context, repo *model.Repository, settings *model.MigrationSettings) (bool, error) {
	if err := x.apply(ctx, repo, repo.StartPreImport); err != nil {
		return false, err
	}
	return x.tryImport(ctx, repo, types.ImportTypePre, settings)
}

func (x *UseCase) retryPreImport(ctx context.Context, repo *model.Repository, settings *model.MigrationSettings) (bool, error) {
	if err := x.apply(ctx, repo, repo.RetryPreImport); err != nil {
		return false, err
	}
	return x.tryImport(ctx, repo, types.ImportTypePre, settings)
}

func (x *UseCase) startImport(ctx context.Context, repo *model.Repository, settings *model.MigrationSettings) (bool, error) {
	if err := x.apply(ctx, repo, repo.StartImport); err != nil {
		return false, err
	}
	return x.tryImport(ctx, repo, types.ImportTypeFinal, settings)
}

func (x *UseCase) retryImport(ctx context.Context, repo *model.Repository, settings *model.MigrationSettings) (bool, error) {
	if err := x.apply(ctx, repo, repo.RetryImport); err != nil {
		return false, err
	}
	return x.tryImport(ctx, repo, types.ImportTypeFinal, settings)
}

func (x *UseCase) finishPreImportAndStartImport(ctx context.Context, repo *model.Repository, settings *model.MigrationSettings) (bool, error) {
	if err := x.apply(ctx, repo, repo.FinishPreImport); err != nil {
		return false, err
	}
	return x.startImport(ctx, repo, settings)
}

// reconcileImportStatus aligns repo with the status the registry holds. Statuses that do not
// tell anything run fallback instead.
func (x *UseCase) reconcileImportStatus(ctx context.Context, repo *model.Repository, status types.ExternalImportStatus, settings *model.MigrationSettings, fallback func() error) error {
	switch status {
	case types.ExternalStatusNative:
		return x.apply(ctx, repo, func(now time.Time) error {
			return repo.FinishImportAs(types.SkipReasonNativeImport, now)
		})

	case types.ExternalStatusPreImportInProgress:
		if repo.PreImporting() {
			return nil
		}
		return x.apply(ctx, repo, repo.StartPreImport)

	case types.ExternalStatusImportInProgress:
		if repo.Importing() {
			return nil
		}
		return x.apply(ctx, repo, repo.StartImport)

	case types.ExternalStatusImportComplete:
		return x.apply(ctx, repo, repo.FinishImport)

	case types.ExternalStatusImportFailed, types.ExternalStatusImportCanceled:
		_, err := x.retryImport(ctx, repo, settings)
		return err

	case types.ExternalStatusPreImportComplete:
		_, err := x.finishPreImportAndStartImport(ctx, repo, settings)
		return err

	case types.ExternalStatusPreImportFailed, types.ExternalStatusPreImportCanceled:
		_, err := x.retryPreImport(ctx, repo, settings)
		return err

	default:
		return fallback()
	}
}

// retryAbortedMigration resumes an aborted repository from where the registry says it is. When
// the registry can not tell, the recorded timestamps decide the stage to retry.
func (x *UseCase) retryAbortedMigration(ctx context.Context, repo *model.Repository, settings *model.MigrationSettings) error {
	if repo.MigrationState != types.MigrationStateImportAborted {
		return nil
	}

	status, err := x.clients.Registry().ImportStatus(ctx, repo.Path)
	if err != nil {
		logging.From(ctx).Warn("failed to get import status, falling back to timestamps",
			"repository_id", repo.ID,
			"error", err,
		)
		status = types.ExternalStatusError
	}

	return x.reconcileImportStatus(ctx, repo, status, settings, func() error {
		var err error
		if !repo.MigrationPreImportDoneAt.IsZero() {
			_, err = x.retryImport(ctx, repo, settings)
		} else {
			_, err = x.retryPreImport(ctx, repo, settings)
		}
		return err
	})
}
