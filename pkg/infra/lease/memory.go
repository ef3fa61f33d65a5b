// Package lease provides ExclusiveLease implementations. A lease is held by whoever has its token
// until it is canceled or its timeout passes.
package lease

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

type memoryLease struct {
	token     string
	expiresAt time.Time
}

// Memory is a process local lease. It is enough for a single serve process and for tests.
type Memory struct {
	mu     sync.Mutex
	leases map[string]memoryLease
}

var _ interfaces.ExclusiveLease = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		leases: make(map[string]memoryLease),
	}
}

func (x *Memory) TryObtain(ctx context.Context, key string, timeout time.Duration) (string, error) {
	now := logging.CtxTime(ctx)

	x.mu.Lock()
	defer x.mu.Unlock()

	if current, ok := x.leases[key]; ok && current.expiresAt.After(now) {
		return "", nil
	}

	token := uuid.NewString()
	x.leases[key] = memoryLease{token: token, expiresAt: now.Add(timeout)}
	return token, nil
}

func (x *Memory) Cancel(ctx context.Context, key, token string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if current, ok := x.leases[key]; ok && current.token == token {
		delete(x.leases, key)
	}
	return nil
}
