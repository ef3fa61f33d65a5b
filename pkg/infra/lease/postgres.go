package lease

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

// Postgres keeps leases in the exclusive_leases table. An expired row is taken over by the upsert.
type Postgres struct {
	db *sql.DB
}

var _ interfaces.ExclusiveLease = (*Postgres)(nil)

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (x *Postgres) TryObtain(ctx context.Context, key string, timeout time.Duration) (string, error) {
	now := logging.CtxTime(ctx)
	token := uuid.NewString()

	var obtained string
	err := x.db.QueryRowContext(ctx, `INSERT INTO exclusive_leases (key, token, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at
		WHERE exclusive_leases.expires_at <= $4
		RETURNING token`,
		key, token, now.Add(timeout), now,
	).Scan(&obtained)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", goerr.Wrap(err, "failed to obtain lease", goerr.V("key", key))
	}
	return obtained, nil
}

func (x *Postgres) Cancel(ctx context.Context, key, token string) error {
	if _, err := x.db.ExecContext(ctx,
		`DELETE FROM exclusive_leases WHERE key = $1 AND token = $2`,
		key, token,
	); err != nil {
		return goerr.Wrap(err, "failed to cancel lease", goerr.V("key", key))
	}
	return nil
}
