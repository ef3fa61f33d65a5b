// Package jobs tracks asynchronous jobs of batch imports. The waiter collects completion
// notifications under a key and the tracker answers whether a job ID is still alive.
package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/domain/types"
)

type waitQueue struct {
	done   []types.JobID
	signal chan struct{}
}

// Waiter is a process local JobWaiter. Notifications sent before Wait are kept until consumed.
type Waiter struct {
	mu     sync.Mutex
	queues map[string]*waitQueue
}

var _ interfaces.JobWaiter = (*Waiter)(nil)

func NewWaiter() *Waiter {
	return &Waiter{
		queues: make(map[string]*waitQueue),
	}
}

func (x *Waiter) queue(key string) *waitQueue {
	q, ok := x.queues[key]
	if !ok {
		q = &waitQueue{signal: make(chan struct{})}
		x.queues[key] = q
	}
	return q
}

func (x *Waiter) Notify(ctx context.Context, key string, jobID types.JobID) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	q := x.queue(key)
	q.done = append(q.done, jobID)
	close(q.signal)
	q.signal = make(chan struct{})
	return nil
}

// consume takes up to remaining notifications and returns how many are still outstanding along
// with the channel that is closed on the next notification.
func (x *Waiter) consume(key string, remaining int) (int, <-chan struct{}) {
	x.mu.Lock()
	defer x.mu.Unlock()

	q := x.queue(key)
	n := min(len(q.done), remaining)
	q.done = q.done[n:]
	remaining -= n

	if remaining == 0 && len(q.done) == 0 {
		delete(x.queues, key)
	}
	return remaining, q.signal
}

func (x *Waiter) Wait(ctx context.Context, key string, remaining int, timeout time.Duration) (int, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		var signal <-chan struct{}
		remaining, signal = x.consume(key, remaining)
		if remaining <= 0 {
			return 0, nil
		}

		select {
		case <-ctx.Done():
			return remaining, ctx.Err()
		case <-timer.C:
			return remaining, nil
		case <-signal:
		}
	}
}
