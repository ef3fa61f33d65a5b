package metrics_test

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/infra/metrics"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestNew(t *testing.T) {
	t.Run("returns nil when provider is nil", func(t *testing.T) {
		m, err := metrics.New(nil)
		gt.NoError(t, err)
		gt.V(t, m).Equal(nil)
	})

	t.Run("nil metrics is a no-op", func(t *testing.T) {
		var m *metrics.Metrics
		ctx := context.Background()
		m.RecordRepositoryCount(ctx, types.MigrationStateDefault, 1)
		m.AddGuardAborts(ctx, 1)
		m.AddStuckImportJobs(ctx, "with_jid", 1)
	})
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	gt.NoError(t, reader.Collect(context.Background(), &rm))

	found := make(map[string]metricdata.Metrics)
	for _, scope := range rm.ScopeMetrics {
		if scope.Scope.Name != metrics.MeterName {
			continue
		}
		for _, m := range scope.Metrics {
			found[m.Name] = m
		}
	}
	return found
}

func TestRecord(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	m := gt.R1(metrics.New(mp)).NoError(t)
	ctx := context.Background()

	m.RecordRepositoryCount(ctx, types.MigrationStateImporting, 7)
	m.AddGuardAborts(ctx, 2)
	m.AddGuardAborts(ctx, 0)
	m.AddStuckImportJobs(ctx, "without_jid", 3)

	found := collect(t, reader)

	gauge, ok := found["regmig_repositories"].Data.(metricdata.Gauge[int64])
	gt.True(t, ok)
	gt.A(t, gauge.DataPoints).Length(1)
	gt.V(t, gauge.DataPoints[0].Value).Equal(int64(7))
	state, _ := gauge.DataPoints[0].Attributes.Value(attribute.Key("state"))
	gt.V(t, state.AsString()).Equal("importing")

	aborts, ok := found["regmig_guard_aborted"].Data.(metricdata.Sum[int64])
	gt.True(t, ok)
	gt.V(t, aborts.DataPoints[0].Value).Equal(int64(2))

	stuck, ok := found["regmig_stuck_import_jobs"].Data.(metricdata.Sum[int64])
	gt.True(t, ok)
	kind, _ := stuck.DataPoints[0].Attributes.Value(attribute.Key("type"))
	gt.V(t, kind.AsString()).Equal("without_jid")
	gt.V(t, stuck.DataPoints[0].Value).Equal(int64(3))
}

func TestNewPrometheus(t *testing.T) {
	m, handler, shutdown, err := metrics.NewPrometheus()
	gt.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	m.RecordRepositoryCount(context.Background(), types.MigrationStateDefault, 12)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	gt.V(t, w.Code).Equal(200)

	body, err := io.ReadAll(w.Body)
	gt.NoError(t, err)
	gt.True(t, strings.Contains(string(body), "regmig_repositories"))
}
