package jobs

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

// Tracker is a process local JobTracker.
type Tracker struct {
	mu      sync.Mutex
	expires map[types.JobID]time.Time
}

var _ interfaces.JobTracker = (*Tracker)(nil)

func NewTracker() *Tracker {
	return &Tracker{
		expires: make(map[types.JobID]time.Time),
	}
}

func (x *Tracker) Set(ctx context.Context, jobID types.JobID, ttl time.Duration) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.expires[jobID] = logging.CtxTime(ctx).Add(ttl)
	return nil
}

func (x *Tracker) Expire(ctx context.Context, jobID types.JobID, ttl time.Duration) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if _, ok := x.expires[jobID]; ok {
		x.expires[jobID] = logging.CtxTime(ctx).Add(ttl)
	}
	return nil
}

func (x *Tracker) Complete(ctx context.Context, jobID types.JobID) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.expires, jobID)
	return nil
}

func (x *Tracker) running(now time.Time, jobID types.JobID) bool {
	expiresAt, ok := x.expires[jobID]
	return ok && expiresAt.After(now)
}

func (x *Tracker) Running(ctx context.Context, jobID types.JobID) (bool, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.running(logging.CtxTime(ctx), jobID), nil
}

func (x *Tracker) CompletedJobIDs(ctx context.Context, jobIDs []types.JobID) ([]types.JobID, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	now := logging.CtxTime(ctx)
	var completed []types.JobID
	for _, id := range jobIDs {
		if !x.running(now, id) {
			completed = append(completed, id)
		}
	}
	return completed, nil
}

// PostgresTracker keeps job expirations in the job_statuses table so that every process sees the
// same jobs.
type PostgresTracker struct {
	db *sql.DB
}

var _ interfaces.JobTracker = (*PostgresTracker)(nil)

func NewPostgresTracker(db *sql.DB) *PostgresTracker {
	return &PostgresTracker{db: db}
}

func (x *PostgresTracker) Set(ctx context.Context, jobID types.JobID, ttl time.Duration) error {
	if _, err := x.db.ExecContext(ctx, `INSERT INTO job_statuses (job_id, expires_at) VALUES ($1, $2)
		ON CONFLICT (job_id) DO UPDATE SET expires_at = EXCLUDED.expires_at`,
		jobID, logging.CtxTime(ctx).Add(ttl),
	); err != nil {
		return goerr.Wrap(err, "failed to set job status", goerr.V("jobID", jobID))
	}
	return nil
}

func (x *PostgresTracker) Expire(ctx context.Context, jobID types.JobID, ttl time.Duration) error {
	if _, err := x.db.ExecContext(ctx, `UPDATE job_statuses SET expires_at = $2 WHERE job_id = $1`,
		jobID, logging.CtxTime(ctx).Add(ttl),
	); err != nil {
		return goerr.Wrap(err, "failed to expire job status", goerr.V("jobID", jobID))
	}
	return nil
}

func (x *PostgresTracker) Complete(ctx context.Context, jobID types.JobID) error {
	if _, err := x.db.ExecContext(ctx, `DELETE FROM job_statuses WHERE job_id = $1`, jobID); err != nil {
		return goerr.Wrap(err, "failed to complete job status", goerr.V("jobID", jobID))
	}
	return nil
}

func (x *PostgresTracker) Running(ctx context.Context, jobID types.JobID) (bool, error) {
	completed, err := x.CompletedJobIDs(ctx, []types.JobID{jobID})
	if err != nil {
		return false, err
	}
	return len(completed) == 0, nil
}

func (x *PostgresTracker) CompletedJobIDs(ctx context.Context, jobIDs []types.JobID) ([]types.JobID, error) {
	if len(jobIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(jobIDs))
	for i, id := range jobIDs {
		ids[i] = id.String()
	}

	rows, err := x.db.QueryContext(ctx,
		`SELECT job_id FROM job_statuses WHERE job_id = ANY($1) AND expires_at > $2`,
		pq.Array(ids), logging.CtxTime(ctx),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query job statuses")
	}
	defer rows.Close()

	running := make(map[types.JobID]struct{}, len(jobIDs))
	for rows.Next() {
		var id types.JobID
		if err := rows.Scan(&id); err != nil {
			return nil, goerr.Wrap(err, "failed to scan job status")
		}
		running[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate job statuses")
	}

	var completed []types.JobID
	for _, id := range jobIDs {
		if _, ok := running[id]; !ok {
			completed = append(completed, id)
		}
	}
	return completed, nil
}
