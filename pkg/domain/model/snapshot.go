package model

import (
	"time"

	"github.com/google/uuid"
)

type StateCount struct {
	State string `json:"state" bigquery:"state"`
	Count int64  `json:"count" bigquery:"count"`
}

// StateCountSnapshot is one observer sample exported to BigQuery.
type StateCountSnapshot struct {
	ID        string       `json:"id" bigquery:"id"`
	Timestamp time.Time    `json:"timestamp" bigquery:"timestamp"`
	Counts    []StateCount `json:"counts" bigquery:"counts"`
}

// StateCountRawRecord is the wire form of StateCountSnapshot for the storage write API, which
// expects timestamps as microseconds.
type StateCountRawRecord struct {
	StateCountSnapshot
	Timestamp int64 `json:"timestamp"`
}

func NewStateCountSnapshot(now time.Time) *StateCountSnapshot {
	return &StateCountSnapshot{
		ID:        uuid.NewString(),
		Timestamp: now.UTC(),
	}
}
