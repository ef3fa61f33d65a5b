package types

type BatchStage string

const (
	BatchStagePreImport BatchStage = "pre_import"
	BatchStageImport    BatchStage = "import"
	BatchStageFinish    BatchStage = "finish"
)

type BatchStatus string

const (
	BatchStatusScheduled BatchStatus = "scheduled"
	BatchStatusStarted   BatchStatus = "started"
	BatchStatusFinished  BatchStatus = "finished"
	BatchStatusFailed    BatchStatus = "failed"
)

// Enqueued reports whether the batch has not reached a final status yet.
func (x BatchStatus) Enqueued() bool {
	return x == BatchStatusScheduled || x == BatchStatusStarted
}

// TimeoutStrategy decides what a stalled stage does once its timeout is reached.
type TimeoutStrategy string

const (
	TimeoutStrategyOptimistic  TimeoutStrategy = "optimistic"
	TimeoutStrategyPessimistic TimeoutStrategy = "pessimistic"
)

func (x TimeoutStrategy) Valid() bool {
	return x == TimeoutStrategyOptimistic || x == TimeoutStrategyPessimistic
}
