package repository

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
)

var (
	ErrNotFound      = goerr.New("not found")
	ErrAlreadyExists = goerr.New("already exists")
	ErrInvalidInput  = goerr.New("invalid input")
)

// IsStaleMigration reports whether repo stays in a migration stage that was entered before the
// threshold. Stores without a query language use it to evaluate ListStaleMigrations.
func IsStaleMigration(repo *model.Repository, before time.Time) bool {
	switch repo.MigrationState {
	case types.MigrationStatePreImporting:
		return repo.MigrationPreImportStartedAt.Before(before)
	case types.MigrationStatePreImportDone:
		return repo.MigrationPreImportDoneAt.Before(before)
	case types.MigrationStateImporting:
		return repo.MigrationImportStartedAt.Before(before)
	default:
		return false
	}
}
