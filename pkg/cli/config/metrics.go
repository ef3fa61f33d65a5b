package config

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/m-mizutani/regmig/pkg/infra/metrics"
	"github.com/urfave/cli/v3"
)

type Metrics struct {
	enabled bool
}

func (x *Metrics) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "metrics",
			Usage:       "Export Prometheus metrics on /metrics",
			Category:    "Metrics",
			Destination: &x.enabled,
			Sources:     cli.EnvVars("REGMIG_METRICS"),
		},
	}
}

// New returns nil instruments, handler and a no-op shutdown when metrics are disabled.
func (x *Metrics) New() (*metrics.Metrics, http.Handler, func(context.Context) error, error) {
	if !x.enabled {
		return nil, nil, func(context.Context) error { return nil }, nil
	}
	return metrics.NewPrometheus()
}

func (x *Metrics) LogValue() slog.Value {
	return slog.GroupValue(slog.Bool("enabled", x.enabled))
}
