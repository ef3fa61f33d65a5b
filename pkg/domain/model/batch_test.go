package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
)

func TestStartBatchImportInputValidate(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		input := &model.StartBatchImportInput{
			Paths:           []types.RepositoryPath{"a/b", "a/c"},
			TimeoutStrategy: types.TimeoutStrategyOptimistic,
		}
		gt.NoError(t, input.Validate())
	})

	t.Run("empty paths", func(t *testing.T) {
		input := &model.StartBatchImportInput{}
		gt.Error(t, input.Validate())
	})

	t.Run("duplicated path", func(t *testing.T) {
		input := &model.StartBatchImportInput{Paths: []types.RepositoryPath{"a/b", "a/b"}}
		gt.Error(t, input.Validate())
	})

	t.Run("unknown strategy", func(t *testing.T) {
		input := &model.StartBatchImportInput{
			Paths:           []types.RepositoryPath{"a/b"},
			TimeoutStrategy: "reckless",
		}
		gt.Error(t, input.Validate())
	})
}

func TestAdvanceStageStateJobCount(t *testing.T) {
	state := &model.AdvanceStageState{
		Waiters: map[string]int{"a": 2, "b": 3},
	}
	gt.V(t, state.JobCount()).Equal(5)
}

func TestRegistryNotificationValidate(t *testing.T) {
	n := &model.RegistryNotification{Path: "a/b", Status: types.NotificationImportComplete}
	gt.NoError(t, n.Validate())

	n = &model.RegistryNotification{Path: "a/b", Status: "something"}
	gt.Error(t, n.Validate())

	n = &model.RegistryNotification{Status: types.NotificationImportComplete}
	gt.Error(t, n.Validate())
}
