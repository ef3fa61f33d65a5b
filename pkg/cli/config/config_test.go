package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/regmig/pkg/cli/config"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/infra"
	"github.com/urfave/cli/v3"
)

// parse runs a command with flags so that their destinations are filled from args.
func parse(t *testing.T, flags []cli.Flag, args ...string) {
	t.Helper()
	cmd := &cli.Command{
		Name:   "test",
		Flags:  flags,
		Action: func(ctx context.Context, c *cli.Command) error { return nil },
	}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
}

func TestMigration(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var m config.Migration
		parse(t, m.Flags())

		provider := gt.R1(m.NewSettings()).NoError(t)
		s := gt.R1(provider.Settings(context.Background())).NoError(t)
		gt.False(t, s.Enabled)
		gt.V(t, s.Capacity).Equal(1)
		gt.V(t, s.EnqueueWaitingTime).Equal(45 * time.Minute)
		gt.False(t, m.Production())
	})

	t.Run("flags", func(t *testing.T) {
		var m config.Migration
		parse(t, m.Flags(),
			"--migration-enabled",
			"--migration-capacity", "5",
			"--migration-max-tags-count", "0",
			"--migration-enqueue-waiting-time", "1m",
			"--migration-created-before", "2024-01-01T00:00:00Z",
			"--production",
		)

		provider := gt.R1(m.NewSettings()).NoError(t)
		s := gt.R1(provider.Settings(context.Background())).NoError(t)
		gt.True(t, s.Enabled)
		gt.V(t, s.Capacity).Equal(5)
		gt.V(t, s.MaxTagsCount).Equal(0)
		gt.V(t, s.EnqueueWaitingTime).Equal(time.Minute)
		gt.V(t, s.CreatedBefore).Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		gt.True(t, m.Production())
	})

	t.Run("settings file overrides flags", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.cue")
		gt.NoError(t, os.WriteFile(path, []byte(`capacity: 20`), 0600))

		var m config.Migration
		parse(t, m.Flags(), "--migration-capacity", "5", "--migration-enabled", "--migration-settings", path)

		provider := gt.R1(m.NewSettings()).NoError(t)
		s := gt.R1(provider.Settings(context.Background())).NoError(t)
		gt.V(t, s.Capacity).Equal(20)
		gt.True(t, s.Enabled)
	})

	t.Run("invalid created-before", func(t *testing.T) {
		var m config.Migration
		parse(t, m.Flags(), "--migration-created-before", "yesterday")

		_, err := m.NewSettings()
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("negative capacity", func(t *testing.T) {
		var m config.Migration
		parse(t, m.Flags(), "--migration-capacity=-1")

		_, err := m.NewSettings()
		gt.Error(t, err)
	})
}

func TestFeature(t *testing.T) {
	t.Run("known flag", func(t *testing.T) {
		var f config.Feature
		parse(t, f.Flags(), "--feature", "dynamic_pre_import_timeout")

		flags := gt.R1(f.New()).NoError(t)
		gt.True(t, flags.Enabled(context.Background(), types.FeatureDynamicPreImportTimeout))
	})

	t.Run("no flag", func(t *testing.T) {
		var f config.Feature
		parse(t, f.Flags())

		flags := gt.R1(f.New()).NoError(t)
		gt.False(t, flags.Enabled(context.Background(), types.FeatureDynamicPreImportTimeout))
	})

	t.Run("unknown flag", func(t *testing.T) {
		var f config.Feature
		parse(t, f.Flags(), "--feature", "no_such_flag")

		_, err := f.New()
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}

func TestStore(t *testing.T) {
	t.Run("memory by default", func(t *testing.T) {
		var s config.Store
		parse(t, s.Flags())

		options, closer, err := s.Configure(context.Background())
		gt.NoError(t, err)
		defer closer()

		clients := infra.New(options...)
		gt.V(t, clients.RepositoryStore()).NotEqual(nil)
		gt.V(t, clients.ExclusiveLease()).NotEqual(nil)
		gt.V(t, clients.JobTracker()).NotEqual(nil)
	})

	t.Run("unknown backend", func(t *testing.T) {
		var s config.Store
		parse(t, s.Flags(), "--store", "mysql")

		_, _, err := s.Configure(context.Background())
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("postgres requires url", func(t *testing.T) {
		var s config.Store
		parse(t, s.Flags(), "--store", "postgres")

		_, _, err := s.Configure(context.Background())
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("firestore requires project", func(t *testing.T) {
		var s config.Store
		parse(t, s.Flags(), "--store", "firestore")

		_, _, err := s.Configure(context.Background())
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}

func TestRegistry(t *testing.T) {
	t.Run("url is required", func(t *testing.T) {
		var r config.Registry
		parse(t, r.Flags())

		_, err := r.New()
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("client and secret", func(t *testing.T) {
		var r config.Registry
		parse(t, r.Flags(),
			"--registry-url", "https://registry.example.com",
			"--registry-token", "token",
			"--registry-notification-secret", "s3cret",
		)

		client := gt.R1(r.New()).NoError(t)
		gt.V(t, client).NotEqual(nil)
		gt.V(t, r.NotificationSecret()).Equal(types.NotificationSecret("s3cret"))
	})
}

func TestBigQuery(t *testing.T) {
	t.Run("disabled without project and dataset", func(t *testing.T) {
		var bq config.BigQuery
		parse(t, bq.Flags())

		gt.False(t, bq.Enabled())
		client := gt.R1(bq.NewClient(context.Background())).NoError(t)
		gt.True(t, client == nil)
	})

	t.Run("dataset without project", func(t *testing.T) {
		var bq config.BigQuery
		parse(t, bq.Flags(), "--bigquery-dataset-id", "migration")

		_, err := bq.NewClient(context.Background())
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}

func TestMetrics(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		var m config.Metrics
		parse(t, m.Flags())

		instruments, handler, shutdown, err := m.New()
		gt.NoError(t, err)
		gt.True(t, instruments == nil)
		gt.True(t, handler == nil)
		gt.NoError(t, shutdown(context.Background()))
	})

	t.Run("prometheus", func(t *testing.T) {
		var m config.Metrics
		parse(t, m.Flags(), "--metrics")

		instruments, handler, shutdown, err := m.New()
		gt.NoError(t, err)
		defer func() { gt.NoError(t, shutdown(context.Background())) }()
		gt.True(t, instruments != nil)
		gt.True(t, handler != nil)
	})
}
