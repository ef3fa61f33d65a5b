// Package metrics exports migration counters through OpenTelemetry.
package metrics

import (
	"context"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const MeterName = "github.com/m-mizutani/regmig/migration"

// Metrics holds the migration instruments. A nil *Metrics is a valid no-op.
type Metrics struct {
	repositories metric.Int64Gauge
	guardAborts  metric.Int64Counter
	stuckImports metric.Int64Counter
}

var _ interfaces.Metrics = (*Metrics)(nil)

// New creates instruments on provider. If provider is nil, it returns nil (no-op metrics).
func New(provider metric.MeterProvider) (*Metrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(MeterName)

	repositories, err := meter.Int64Gauge(
		"regmig_repositories",
		metric.WithDescription("Number of repositories in each migration state"),
		metric.WithUnit("{repository}"),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create repositories gauge")
	}

	guardAborts, err := meter.Int64Counter(
		"regmig_guard_aborted",
		metric.WithDescription("Number of stale migrations aborted by the guard"),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create guard counter")
	}

	stuckImports, err := meter.Int64Counter(
		"regmig_stuck_import_jobs",
		metric.WithDescription("Number of batch imports failed by the stuck import sweep"),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create stuck import counter")
	}

	return &Metrics{
		repositories: repositories,
		guardAborts:  guardAborts,
		stuckImports: stuckImports,
	}, nil
}

func (m *Metrics) RecordRepositoryCount(ctx context.Context, state types.MigrationState, count int64) {
	if m == nil || m.repositories == nil {
		return
	}
	m.repositories.Record(ctx, count, metric.WithAttributes(attribute.String("state", state.String())))
}

func (m *Metrics) AddGuardAborts(ctx context.Context, n int64) {
	if m == nil || m.guardAborts == nil || n == 0 {
		return
	}
	m.guardAborts.Add(ctx, n)
}

func (m *Metrics) AddStuckImportJobs(ctx context.Context, kind string, n int64) {
	if m == nil || m.stuckImports == nil || n == 0 {
		return
	}
	m.stuckImports.Add(ctx, n, metric.WithAttributes(attribute.String("type", kind)))
}

// NewPrometheus creates Metrics backed by a Prometheus exporter on its own registry. It returns
// the handler for the /metrics endpoint and the shutdown function of the meter provider.
func NewPrometheus() (*Metrics, http.Handler, func(context.Context) error, error) {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, nil, nil, goerr.Wrap(err, "failed to create prometheus exporter")
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	m, err := New(provider)
	if err != nil {
		_ = provider.Shutdown(context.Background())
		return nil, nil, nil, err
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m, handler, provider.Shutdown, nil
}
