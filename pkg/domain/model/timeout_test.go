package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
)

func TestEffectiveTimeout(t *testing.T) {
	settings := model.DefaultMigrationSettings()
	settings.PreImportTimeout = 30 * time.Minute
	settings.ImportTimeout = 10 * time.Minute
	settings.PreImportTagsRate = 1

	testCases := map[string]struct {
		state   types.MigrationState
		elapsed time.Duration
		tags    int
		dynamic bool
		expect  time.Duration
	}{
		"import uses import timeout": {
			state:   types.MigrationStateImporting,
			elapsed: time.Hour,
			tags:    10000,
			dynamic: true,
			expect:  10 * time.Minute,
		},
		"pre-import uses static timeout when flag is off": {
			state:   types.MigrationStatePreImporting,
			elapsed: time.Hour,
			tags:    10000,
			expect:  30 * time.Minute,
		},
		"pre-import keeps static timeout before exceeding it": {
			state:   types.MigrationStatePreImporting,
			elapsed: 20 * time.Minute,
			tags:    10000,
			dynamic: true,
			expect:  30 * time.Minute,
		},
		"pre-import switches to dynamic timeout after exceeding static one": {
			state:   types.MigrationStatePreImporting,
			elapsed: 40 * time.Minute,
			tags:    3600,
			dynamic: true,
			expect:  time.Hour,
		},
		"dynamic timeout can be shorter than static one": {
			state:   types.MigrationStatePreImporting,
			elapsed: 40 * time.Minute,
			tags:    60,
			dynamic: true,
			expect:  time.Minute,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got := model.EffectiveTimeout(tc.state, tc.elapsed, tc.tags, &settings, tc.dynamic)
			gt.V(t, got).Equal(tc.expect)
		})
	}
}

func TestLongRunning(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	settings := model.DefaultMigrationSettings()

	t.Run("pre-import over static timeout", func(t *testing.T) {
		repo := &model.Repository{
			MigrationState:              types.MigrationStatePreImporting,
			MigrationPreImportStartedAt: now.Add(-40 * time.Minute),
		}
		gt.True(t, model.LongRunning(repo, now, &settings, false))
	})

	t.Run("large pre-import gets extra runway with dynamic timeout", func(t *testing.T) {
		repo := &model.Repository{
			MigrationState:              types.MigrationStatePreImporting,
			MigrationPreImportStartedAt: now.Add(-40 * time.Minute),
			TagsCount:                   10000,
		}
		gt.False(t, model.LongRunning(repo, now, &settings, true))
	})

	t.Run("import within timeout", func(t *testing.T) {
		repo := &model.Repository{
			MigrationState:           types.MigrationStateImporting,
			MigrationImportStartedAt: now.Add(-5 * time.Minute),
		}
		gt.False(t, model.LongRunning(repo, now, &settings, false))
	})
}

func TestMigrationSettingsValidate(t *testing.T) {
	t.Run("default settings are valid", func(t *testing.T) {
		s := model.DefaultMigrationSettings()
		gt.NoError(t, s.Validate())
	})

	t.Run("negative capacity is rejected", func(t *testing.T) {
		s := model.DefaultMigrationSettings()
		s.Capacity = -1
		gt.Error(t, s.Validate())
	})

	t.Run("negative waiting time is rejected", func(t *testing.T) {
		s := model.DefaultMigrationSettings()
		s.EnqueueWaitingTime = -time.Second
		gt.Error(t, s.Validate())
	})
}
