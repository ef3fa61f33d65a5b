package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/types"
)

// Repository is a container repository tracked through the migration pipeline.
type Repository struct {
	ID             types.RepositoryID   `json:"id" firestore:"id"`
	Path           types.RepositoryPath `json:"path" firestore:"path"`
	MigrationState types.MigrationState `json:"migration_state" firestore:"migration_state"`
	TagsCount      int                  `json:"tags_count" firestore:"tags_count"`
	CreatedAt      time.Time            `json:"created_at" firestore:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at" firestore:"updated_at"`

	MigrationPreImportStartedAt time.Time            `json:"migration_pre_import_started_at" firestore:"migration_pre_import_started_at"`
	MigrationPreImportDoneAt    time.Time            `json:"migration_pre_import_done_at" firestore:"migration_pre_import_done_at"`
	MigrationImportStartedAt    time.Time            `json:"migration_import_started_at" firestore:"migration_import_started_at"`
	MigrationImportDoneAt       time.Time            `json:"migration_import_done_at" firestore:"migration_import_done_at"`
	MigrationAbortedAt          time.Time            `json:"migration_aborted_at" firestore:"migration_aborted_at"`
	MigrationAbortedInState     types.MigrationState `json:"migration_aborted_in_state" firestore:"migration_aborted_in_state"`
	MigrationSkippedAt          time.Time            `json:"migration_skipped_at" firestore:"migration_skipped_at"`
	MigrationSkippedReason      types.SkipReason     `json:"migration_skipped_reason" firestore:"migration_skipped_reason"`
	MigrationRetriesCount       int                  `json:"migration_retries_count" firestore:"migration_retries_count"`
}

// Copy returns a shallow copy. Repository has no reference fields.
func (x *Repository) Copy() *Repository {
	if x == nil {
		return nil
	}
	c := *x
	return &c
}

// LastImportStepDoneAt returns the latest completion time of any pipeline step.
func (x *Repository) LastImportStepDoneAt() time.Time {
	var last time.Time
	for _, t := range []time.Time{
		x.MigrationPreImportDoneAt,
		x.MigrationImportDoneAt,
		x.MigrationAbortedAt,
		x.MigrationSkippedAt,
	} {
		if t.After(last) {
			last = t
		}
	}
	return last
}

// StageStartedAt returns when the current in-progress stage was entered.
func (x *Repository) StageStartedAt() time.Time {
	if x.MigrationState == types.MigrationStatePreImporting {
		return x.MigrationPreImportStartedAt
	}
	return x.MigrationImportStartedAt
}

func (x *Repository) NearingOrExceededRetryLimit(maxRetries int) bool {
	return x.MigrationRetriesCount >= maxRetries-1
}

func (x *Repository) RetriedTooManyTimes(maxRetries int) bool {
	return x.MigrationRetriesCount >= maxRetries
}

func (x *Repository) PreImporting() bool {
	return x.MigrationState == types.MigrationStatePreImporting
}

func (x *Repository) Importing() bool {
	return x.MigrationState == types.MigrationStateImporting
}

func (x *Repository) transition(event string, from []types.MigrationState, to types.MigrationState, now time.Time) error {
	if !x.MigrationState.In(from...) {
		return goerr.Wrap(types.ErrInvalidTransition, "transition is not allowed from current state",
			goerr.V("event", event),
			goerr.V("repository_id", x.ID),
			goerr.V("from", x.MigrationState),
			goerr.V("to", to),
		)
	}
	x.MigrationState = to
	x.UpdatedAt = now
	return nil
}

func (x *Repository) StartPreImport(now time.Time) error {
	if err := x.transition("start_pre_import", []types.MigrationState{
		types.MigrationStateDefault,
		types.MigrationStatePreImporting,
		types.MigrationStateImporting,
		types.MigrationStateImportAborted,
	}, types.MigrationStatePreImporting, now); err != nil {
		return err
	}
	x.MigrationPreImportStartedAt = now
	x.MigrationPreImportDoneAt = time.Time{}
	return nil
}

func (x *Repository) FinishPreImport(now time.Time) error {
	if err := x.transition("finish_pre_import", []types.MigrationState{
		types.MigrationStatePreImporting,
		types.MigrationStateImportAborted,
	}, types.MigrationStatePreImportDone, now); err != nil {
		return err
	}
	x.MigrationPreImportDoneAt = now
	return nil
}

func (x *Repository) StartImport(now time.Time) error {
	if err := x.transition("start_import", []types.MigrationState{
		types.MigrationStatePreImportDone,
		types.MigrationStatePreImporting,
		types.MigrationStateImporting,
		types.MigrationStateImportAborted,
	}, types.MigrationStateImporting, now); err != nil {
		return err
	}
	x.MigrationImportStartedAt = now
	return nil
}

func (x *Repository) FinishImport(now time.Time) error {
	if err := x.transition("finish_import", []types.MigrationState{
		types.MigrationStateDefault,
		types.MigrationStatePreImporting,
		types.MigrationStateImporting,
		types.MigrationStateImportAborted,
	}, types.MigrationStateImportDone, now); err != nil {
		return err
	}
	x.MigrationImportDoneAt = now
	return nil
}

// FinishImportAs finishes the import while recording why no real import happened.
func (x *Repository) FinishImportAs(reason types.SkipReason, now time.Time) error {
	prev := x.MigrationSkippedReason
	x.MigrationSkippedReason = reason
	if err := x.FinishImport(now); err != nil {
		x.MigrationSkippedReason = prev
		return err
	}
	return nil
}

// AbortImport moves an in-flight repository to import_aborted and counts a retry. A repository
// that has been retried too many times is skipped instead.
func (x *Repository) AbortImport(now time.Time, maxRetries int) error {
	from := x.MigrationState
	if err := x.transition("abort_import", types.InFlightMigrationStates, types.MigrationStateImportAborted, now); err != nil {
		return err
	}
	x.MigrationAbortedInState = from
	x.MigrationAbortedAt = now
	x.MigrationRetriesCount++

	if x.RetriedTooManyTimes(maxRetries) {
		return x.SkipImport(types.SkipReasonTooManyRetries, now)
	}
	return nil
}

func (x *Repository) SkipImport(reason types.SkipReason, now time.Time) error {
	if err := x.transition("skip_import", []types.MigrationState{
		types.MigrationStateDefault,
		types.MigrationStatePreImporting,
		types.MigrationStateImporting,
		types.MigrationStateImportAborted,
	}, types.MigrationStateImportSkipped, now); err != nil {
		return err
	}
	x.MigrationSkippedReason = reason
	x.MigrationSkippedAt = now
	return nil
}

func (x *Repository) RetryPreImport(now time.Time) error {
	if err := x.transition("retry_pre_import", []types.MigrationState{
		types.MigrationStatePreImporting,
		types.MigrationStateImportAborted,
	}, types.MigrationStatePreImporting, now); err != nil {
		return err
	}
	x.MigrationPreImportStartedAt = now
	return nil
}

func (x *Repository) RetryImport(now time.Time) error {
	if err := x.transition("retry_import", []types.MigrationState{
		types.MigrationStatePreImporting,
		types.MigrationStateImporting,
		types.MigrationStateImportAborted,
	}, types.MigrationStateImporting, now); err != nil {
		return err
	}
	x.MigrationImportStartedAt = now
	return nil
}
