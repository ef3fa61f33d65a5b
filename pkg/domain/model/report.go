package model

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/regmig/pkg/domain/types"
)

// WorkerReport is the structured record of one worker invocation. It is logged with the "done"
// message when the invocation ends.
type WorkerReport struct {
	Worker     types.WorkerName `json:"worker"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Metadata   map[string]any   `json:"metadata"`

	mu sync.Mutex
}

func NewWorkerReport(worker types.WorkerName, startedAt time.Time) *WorkerReport {
	return &WorkerReport{
		Worker:    worker,
		StartedAt: startedAt,
		Metadata:  make(map[string]any),
	}
}

func (x *WorkerReport) Set(key string, value any) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.Metadata[key] = value
}

func (x *WorkerReport) Get(key string) any {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.Metadata[key]
}

// Add increments an integer counter in metadata.
func (x *WorkerReport) Add(key string, delta int) {
	x.mu.Lock()
	defer x.mu.Unlock()
	v, _ := x.Metadata[key].(int)
	x.Metadata[key] = v + delta
}

func (x *WorkerReport) Finish(now time.Time) {
	x.FinishedAt = now
}

func (x *WorkerReport) LogValue() slog.Value {
	x.mu.Lock()
	defer x.mu.Unlock()

	keys := make([]string, 0, len(x.Metadata))
	for k := range x.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := []slog.Attr{
		slog.String("worker", string(x.Worker)),
		slog.Duration("elapsed", x.FinishedAt.Sub(x.StartedAt)),
	}
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, x.Metadata[k]))
	}
	return slog.GroupValue(attrs...)
}
