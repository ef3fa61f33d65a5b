package cli

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/m-mizutani/gots/slice"
	"github.com/m-mizutani/regmig/pkg/cli/config"
	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/infra"
	"github.com/m-mizutani/regmig/pkg/usecase"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// appConfig is the set of flag groups shared by all commands that run workers.
type appConfig struct {
	migration config.Migration
	registry  config.Registry
	store     config.Store
	sentry    config.Sentry
	bigQuery  config.BigQuery
	metrics   config.Metrics
	feature   config.Feature
}

func (x *appConfig) Flags() []cli.Flag {
	return slice.Flatten(
		x.migration.Flags(),
		x.registry.Flags(),
		x.store.Flags(),
		x.sentry.Flags(),
		x.bigQuery.Flags(),
		x.metrics.Flags(),
		x.feature.Flags(),
	)
}

func (x *appConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("migration", &x.migration),
		slog.Any("registry", &x.registry),
		slog.Any("store", &x.store),
		slog.Any("sentry", &x.sentry),
		slog.Any("bigQuery", &x.bigQuery),
		slog.Any("metrics", &x.metrics),
		slog.Any("feature", &x.feature),
	)
}

type app struct {
	uc             *usecase.UseCase
	metricsHandler http.Handler
	closers        []func()
}

func (x *app) Close() {
	for i := len(x.closers) - 1; i >= 0; i-- {
		x.closers[i]()
	}
}

// build wires all clients and the use case. Tasks of batch imports run on runner.
func (x *appConfig) build(ctx context.Context, runner interfaces.TaskRunner) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	if err := x.sentry.Configure(ctx); err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { x.sentry.Flush(2 * time.Second) })

	storeOptions, closeStore, err := x.store.Configure(ctx)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeStore)

	registryClient, err := x.registry.New()
	if err != nil {
		return nil, err
	}

	settingsProvider, err := x.migration.NewSettings()
	if err != nil {
		return nil, err
	}

	features, err := x.feature.New()
	if err != nil {
		return nil, err
	}

	options := append(storeOptions,
		infra.WithRegistry(registryClient),
		infra.WithSettings(settingsProvider),
		infra.WithFeatureFlags(features),
	)

	instruments, handler, shutdown, err := x.metrics.New()
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() {
		if err := shutdown(context.Background()); err != nil {
			logging.Default().Warn("failed to shutdown metrics", "error", err)
		}
	})
	if instruments != nil {
		options = append(options, infra.WithMetrics(instruments))
		a.metricsHandler = handler
	}

	bqClient, err := x.bigQuery.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	if bqClient != nil {
		options = append(options, infra.WithBigQuery(bqClient))
		a.closers = append(a.closers, func() {
			if err := bqClient.Close(); err != nil {
				logging.Default().Warn("failed to close BigQuery client", "error", err)
			}
		})
	}

	a.uc = usecase.New(infra.New(options...),
		usecase.WithProduction(x.migration.Production()),
		usecase.WithTaskRunner(runner),
	)
	return a, nil
}
