package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/types"
)

// BatchImport migrates an explicit set of repositories through both stages. It is the tracked
// operation watched by the stuck import sweep.
type BatchImport struct {
	ID              types.BatchImportID    `json:"id" firestore:"id"`
	Paths           []types.RepositoryPath `json:"paths" firestore:"paths"`
	Stage           types.BatchStage       `json:"stage" firestore:"stage"`
	Status          types.BatchStatus      `json:"status" firestore:"status"`
	JobID           types.JobID            `json:"job_id,omitempty" firestore:"job_id"`
	TimeoutStrategy types.TimeoutStrategy  `json:"timeout_strategy" firestore:"timeout_strategy"`
	Succeeded       []types.RepositoryPath `json:"succeeded,omitempty" firestore:"succeeded"`
	Failed          []types.RepositoryPath `json:"failed,omitempty" firestore:"failed"`
	Error           string                 `json:"error,omitempty" firestore:"error"`
	CreatedAt       time.Time              `json:"created_at" firestore:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at" firestore:"updated_at"`
}

type StartBatchImportInput struct {
	Paths           []types.RepositoryPath `json:"paths"`
	TimeoutStrategy types.TimeoutStrategy  `json:"timeout_strategy"`
}

func (x *StartBatchImportInput) Validate() error {
	if len(x.Paths) == 0 {
		return goerr.Wrap(types.ErrInvalidOption, "paths must not be empty")
	}
	seen := make(map[types.RepositoryPath]struct{}, len(x.Paths))
	for _, p := range x.Paths {
		if p == "" {
			return goerr.Wrap(types.ErrInvalidOption, "path must not be empty")
		}
		if _, ok := seen[p]; ok {
			return goerr.Wrap(types.ErrInvalidOption, "duplicated path", goerr.V("path", p))
		}
		seen[p] = struct{}{}
	}
	if x.TimeoutStrategy != "" && !x.TimeoutStrategy.Valid() {
		return goerr.Wrap(types.ErrInvalidOption, "invalid timeout strategy", goerr.V("strategy", x.TimeoutStrategy))
	}
	return nil
}

func (x *BatchImport) Copy() *BatchImport {
	if x == nil {
		return nil
	}
	c := *x
	c.Paths = append([]types.RepositoryPath(nil), x.Paths...)
	c.Succeeded = append([]types.RepositoryPath(nil), x.Succeeded...)
	c.Failed = append([]types.RepositoryPath(nil), x.Failed...)
	return &c
}

// MarkFailed moves the batch to failed with a reason.
func (x *BatchImport) MarkFailed(reason string, now time.Time) {
	x.Status = types.BatchStatusFailed
	x.Error = reason
	x.UpdatedAt = now
}

// AdvanceStageState is carried between advance-stage checks of a batch.
type AdvanceStageState struct {
	BatchID          types.BatchImportID `json:"batch_id"`
	Waiters          map[string]int      `json:"waiters"`
	NextStage        types.BatchStage    `json:"next_stage"`
	TimeoutStartedAt time.Time           `json:"timeout_started_at"`
	PreviousJobCount int                 `json:"previous_job_count"`
}

func (x *AdvanceStageState) JobCount() int {
	var n int
	for _, remaining := range x.Waiters {
		n += remaining
	}
	return n
}

// AdvanceStageResult tells the caller how the check ended.
type AdvanceStageResult string

const (
	AdvanceStageProceeded   AdvanceStageResult = "proceeded"
	AdvanceStageRescheduled AdvanceStageResult = "rescheduled"
	AdvanceStageFailed      AdvanceStageResult = "failed"
	AdvanceStageGone        AdvanceStageResult = "gone"
)
