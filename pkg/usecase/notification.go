package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

// HandleRegistryNotification applies a stage result reported by the registry.
func (x *UseCase) HandleRegistryNotification(ctx context.Context, notification *model.RegistryNotification) error {
	if err := notification.Validate(); err != nil {
		return err
	}

	repo, err := x.clients.RepositoryStore().GetRepositoryByPath(ctx, notification.Path)
	if err != nil {
		return goerr.Wrap(err, "failed to get notified repository", goerr.V("path", notification.Path))
	}

	settings, err := x.clients.Settings().Settings(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve migration settings")
	}

	logging.From(ctx).Info("registry notification",
		"repository_id", repo.ID,
		"path", repo.Path,
		"state", repo.MigrationState,
		"status", notification.Status,
	)

	switch notification.Status {
	case types.NotificationPreImportComplete:
		_, err = x.finishPreImportAndStartImport(ctx, repo, settings)
	case types.NotificationImportComplete:
		err = x.apply(ctx, repo, repo.FinishImport)
	default:
		err = x.apply(ctx, repo, func(now time.Time) error {
			return repo.AbortImport(now, settings.MaxRetries)
		})
	}
	if err != nil {
		return goerr.Wrap(err, "failed to apply registry notification",
			goerr.V("repository_id", repo.ID),
			goerr.V("status", notification.Status),
		)
	}
	return nil
}
