package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
)

type UseCase interface {
	RunEnqueuer(ctx context.Context) (*model.WorkerReport, error)
	RunGuard(ctx context.Context) (*model.WorkerReport, error)
	RunObserver(ctx context.Context) (*model.WorkerReport, error)
	RunStuckImportSweep(ctx context.Context) (*model.WorkerReport, error)

	HandleRegistryNotification(ctx context.Context, notification *model.RegistryNotification) error

	StartBatchImport(ctx context.Context, input *model.StartBatchImportInput) (*model.BatchImport, error)
	GetBatchImport(ctx context.Context, id types.BatchImportID) (*model.BatchImport, error)
}
