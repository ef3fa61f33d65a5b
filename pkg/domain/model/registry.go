package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/types"
)

// CancelResult is the outcome of canceling an import in the registry. State is the import status
// the registry holds for the repository, if it reported one.
type CancelResult struct {
	Status types.CancelStatus
	State  types.ExternalImportStatus
}

// RegistryNotification is sent by the registry when a migration stage of a repository ends.
type RegistryNotification struct {
	Path   types.RepositoryPath     `json:"path"`
	Status types.NotificationStatus `json:"status"`
}

func (x *RegistryNotification) Validate() error {
	if x.Path == "" {
		return goerr.Wrap(types.ErrInvalidOption, "path is required")
	}
	switch x.Status {
	case types.NotificationPreImportComplete,
		types.NotificationPreImportFailed,
		types.NotificationImportComplete,
		types.NotificationImportFailed:
		return nil
	default:
		return goerr.Wrap(types.ErrInvalidOption, "invalid notification status", goerr.V("status", x.Status))
	}
}
