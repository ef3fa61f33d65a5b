package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/infra"
	"github.com/m-mizutani/regmig/pkg/infra/jobs"
	"github.com/m-mizutani/regmig/pkg/infra/lease"
	"github.com/m-mizutani/regmig/pkg/repository/firestore"
	"github.com/m-mizutani/regmig/pkg/repository/memory"
	"github.com/m-mizutani/regmig/pkg/repository/postgres"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const (
	StoreMemory    = "memory"
	StorePostgres  = "postgres"
	StoreFirestore = "firestore"
)

// Store selects the backend of repositories, batch imports, the enqueuer lease and the job
// tracker.
type Store struct {
	backend string

	postgresURL     types.DatabaseURL `masq:"secret"`
	postgresReplica types.DatabaseURL `masq:"secret"`
	postgresMigrate bool

	firestoreProjectID  string
	firestoreDatabaseID string
}

func (x *Store) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "store",
			Usage:       "Store backend [memory|postgres|firestore]",
			Category:    "Store",
			Destination: &x.backend,
			Value:       StoreMemory,
			Sources:     cli.EnvVars("REGMIG_STORE"),
		},
		&cli.StringFlag{
			Name:        "postgres-url",
			Usage:       "PostgreSQL connection URL of the primary",
			Category:    "Store",
			Destination: (*string)(&x.postgresURL),
			Sources:     cli.EnvVars("REGMIG_POSTGRES_URL"),
		},
		&cli.StringFlag{
			Name:        "postgres-replica-url",
			Usage:       "PostgreSQL connection URL of a read replica for counting (optional)",
			Category:    "Store",
			Destination: (*string)(&x.postgresReplica),
			Sources:     cli.EnvVars("REGMIG_POSTGRES_REPLICA_URL"),
		},
		&cli.BoolFlag{
			Name:        "postgres-migrate",
			Usage:       "Apply schema migrations on startup",
			Category:    "Store",
			Destination: &x.postgresMigrate,
			Sources:     cli.EnvVars("REGMIG_POSTGRES_MIGRATE"),
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore project ID",
			Category:    "Store",
			Destination: &x.firestoreProjectID,
			Sources:     cli.EnvVars("REGMIG_FIRESTORE_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Category:    "Store",
			Destination: &x.firestoreDatabaseID,
			Value:       "(default)",
			Sources:     cli.EnvVars("REGMIG_FIRESTORE_DATABASE_ID"),
		},
	}
}

func (x *Store) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", x.backend),
		slog.Any("postgresURL", x.postgresURL),
		slog.Bool("postgresReplica", x.postgresReplica != ""),
		slog.Bool("postgresMigrate", x.postgresMigrate),
		slog.String("firestoreProjectID", x.firestoreProjectID),
		slog.String("firestoreDatabaseID", x.firestoreDatabaseID),
	)
}

// Configure opens the selected backend and returns the client options wiring it, and a function
// to release it.
func (x *Store) Configure(ctx context.Context) ([]infra.Option, func(), error) {
	switch x.backend {
	case "", StoreMemory:
		return []infra.Option{
			infra.WithRepositoryStore(memory.New()),
			infra.WithExclusiveLease(lease.NewMemory()),
			infra.WithJobTracker(jobs.NewTracker()),
		}, func() {}, nil

	case StorePostgres:
		return x.configurePostgres(ctx)

	case StoreFirestore:
		return x.configureFirestore(ctx)

	default:
		return nil, nil, goerr.Wrap(types.ErrInvalidOption, "unknown store backend", goerr.V("store", x.backend))
	}
}

func (x *Store) configurePostgres(ctx context.Context) ([]infra.Option, func(), error) {
	if x.postgresURL == "" {
		return nil, nil, goerr.Wrap(types.ErrInvalidOption, "postgres-url is required for postgres store")
	}

	db, err := postgres.Open(ctx, string(x.postgresURL))
	if err != nil {
		return nil, nil, err
	}

	if x.postgresMigrate {
		if err := postgres.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}

	var storeOptions []postgres.Option
	if x.postgresReplica != "" {
		replica, err := postgres.Open(ctx, string(x.postgresReplica))
		if err != nil {
			_ = db.Close()
			return nil, nil, goerr.Wrap(err, "failed to open replica")
		}
		storeOptions = append(storeOptions, postgres.WithReplica(replica))
	}

	store := postgres.New(db, storeOptions...)
	closer := func() {
		if err := store.Close(); err != nil {
			logging.Default().Warn("failed to close postgres store", "error", err)
		}
	}

	return []infra.Option{
		infra.WithRepositoryStore(store),
		infra.WithExclusiveLease(lease.NewPostgres(db)),
		infra.WithJobTracker(jobs.NewPostgresTracker(db)),
	}, closer, nil
}

// configureFirestore keeps job ids in memory. They only live as long as the process that polls
// them.
func (x *Store) configureFirestore(ctx context.Context) ([]infra.Option, func(), error) {
	if x.firestoreProjectID == "" {
		return nil, nil, goerr.Wrap(types.ErrInvalidOption, "firestore-project-id is required for firestore store")
	}

	store, err := firestore.New(ctx, x.firestoreProjectID, x.firestoreDatabaseID)
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if err := store.Close(); err != nil {
			logging.Default().Warn("failed to close firestore store", "error", err)
		}
	}

	return []infra.Option{
		infra.WithRepositoryStore(store),
		infra.WithExclusiveLease(lease.NewFirestore(store.Client())),
		infra.WithJobTracker(jobs.NewTracker()),
	}, closer, nil
}
