package model

import (
	"time"

	"github.com/m-mizutani/regmig/pkg/domain/types"
)

// EffectiveTimeout returns the timeout after which a stage running for elapsed is considered long
// running. The dynamic pre-import timeout only replaces the static one once the static timeout
// has already been exceeded.
func EffectiveTimeout(state types.MigrationState, elapsed time.Duration, tagsCount int, settings *MigrationSettings, dynamicEnabled bool) time.Duration {
	if state != types.MigrationStatePreImporting {
		return settings.ImportTimeout
	}

	timeout := settings.PreImportTimeout
	if dynamicEnabled && elapsed > timeout {
		timeout = settings.DynamicPreImportTimeoutFor(tagsCount)
	}
	return timeout
}

// LongRunning reports whether a stage entered at startedAt exceeded its effective timeout at now.
func LongRunning(repo *Repository, now time.Time, settings *MigrationSettings, dynamicEnabled bool) bool {
	elapsed := now.Sub(repo.StageStartedAt())
	return elapsed > EffectiveTimeout(repo.MigrationState, elapsed, repo.TagsCount, settings, dynamicEnabled)
}
