package infra_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/regmig/pkg/domain/mock"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/infra"
	"github.com/m-mizutani/regmig/pkg/repository/memory"
)

func TestNew(t *testing.T) {
	t.Run("defaults are usable without options", func(t *testing.T) {
		ctx := context.Background()
		clients := infra.New()

		gt.V(t, clients.Registry()).Equal(nil)
		gt.V(t, clients.RepositoryStore()).Equal(nil)
		gt.V(t, clients.BigQuery()).Equal(nil)

		s := gt.R1(clients.Settings().Settings(ctx)).NoError(t)
		gt.V(t, *s).Equal(model.DefaultMigrationSettings())
		gt.False(t, clients.FeatureFlags().Enabled(ctx, types.FeatureDynamicPreImportTimeout))

		token := gt.R1(clients.ExclusiveLease().TryObtain(ctx, "test", 0)).NoError(t)
		gt.V(t, token).NotEqual("")

		// no-op metrics must not panic
		clients.Metrics().AddGuardAborts(ctx, 1)

		jobID := types.NewJobID()
		gt.NoError(t, clients.JobTracker().Set(ctx, jobID, 0))
		gt.NoError(t, clients.JobWaiter().Notify(ctx, "key", jobID))
	})

	t.Run("options replace clients", func(t *testing.T) {
		registry := &mock.RegistryClientMock{}
		store := memory.New()
		leaseMock := &mock.ExclusiveLeaseMock{}
		flags := &mock.FeatureFlagsMock{}
		settings := &mock.SettingsProviderMock{}
		metrics := &mock.MetricsMock{}
		waiter := &mock.JobWaiterMock{}
		tracker := &mock.JobTrackerMock{}
		bq := &mock.BigQueryMock{}

		clients := infra.New(
			infra.WithRegistry(registry),
			infra.WithRepositoryStore(store),
			infra.WithExclusiveLease(leaseMock),
			infra.WithFeatureFlags(flags),
			infra.WithSettings(settings),
			infra.WithMetrics(metrics),
			infra.WithJobWaiter(waiter),
			infra.WithJobTracker(tracker),
			infra.WithBigQuery(bq),
		)

		gt.V(t, clients.Registry()).Equal(registry)
		gt.V(t, clients.RepositoryStore()).Equal(store)
		gt.V(t, clients.ExclusiveLease()).Equal(leaseMock)
		gt.V(t, clients.FeatureFlags()).Equal(flags)
		gt.V(t, clients.Settings()).Equal(settings)
		gt.V(t, clients.Metrics()).Equal(metrics)
		gt.V(t, clients.JobWaiter()).Equal(waiter)
		gt.V(t, clients.JobTracker()).Equal(tracker)
		gt.V(t, clients.BigQuery()).Equal(bq)
	})
}
