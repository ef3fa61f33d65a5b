package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/infra/registry"
	"github.com/urfave/cli/v3"
)

type Registry struct {
	url                string
	token              types.RegistryToken      `masq:"secret"`
	notificationSecret types.NotificationSecret `masq:"secret"`
	rateLimit          float64
	rateBurst          int64
	retryMaxElapsed    time.Duration
}

func (x *Registry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "registry-url",
			Usage:       "Base URL of the container registry",
			Category:    "Registry",
			Destination: &x.url,
			Sources:     cli.EnvVars("REGMIG_REGISTRY_URL"),
		},
		&cli.StringFlag{
			Name:        "registry-token",
			Usage:       "Bearer token for the registry import API",
			Category:    "Registry",
			Destination: (*string)(&x.token),
			Sources:     cli.EnvVars("REGMIG_REGISTRY_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "registry-notification-secret",
			Usage:       "Bearer token the registry presents on migration status notifications",
			Category:    "Registry",
			Destination: (*string)(&x.notificationSecret),
			Sources:     cli.EnvVars("REGMIG_REGISTRY_NOTIFICATION_SECRET"),
		},
		&cli.Float64Flag{
			Name:        "registry-rate-limit",
			Usage:       "Requests per second to the registry. Zero disables throttling",
			Category:    "Registry",
			Destination: &x.rateLimit,
			Value:       10,
			Sources:     cli.EnvVars("REGMIG_REGISTRY_RATE_LIMIT"),
		},
		&cli.Int64Flag{
			Name:        "registry-rate-burst",
			Usage:       "Burst size of the registry rate limit",
			Category:    "Registry",
			Destination: &x.rateBurst,
			Value:       10,
			Sources:     cli.EnvVars("REGMIG_REGISTRY_RATE_BURST"),
		},
		&cli.DurationFlag{
			Name:        "registry-retry-max-elapsed",
			Usage:       "How long a status query is retried",
			Category:    "Registry",
			Destination: &x.retryMaxElapsed,
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("REGMIG_REGISTRY_RETRY_MAX_ELAPSED"),
		},
	}
}

func (x *Registry) New() (*registry.Client, error) {
	if x.url == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "registry-url is required")
	}

	return registry.New(x.url, x.token,
		registry.WithRateLimit(x.rateLimit, int(x.rateBurst)),
		registry.WithRetryMaxElapsedTime(x.retryMaxElapsed),
	)
}

func (x *Registry) NotificationSecret() types.NotificationSecret {
	return x.notificationSecret
}

func (x *Registry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("URL", x.url),
		slog.Int("token.len", len(x.token)),
		slog.Int("notificationSecret.len", len(x.notificationSecret)),
		slog.Float64("rateLimit", x.rateLimit),
		slog.Int64("rateBurst", x.rateBurst),
		slog.Duration("retryMaxElapsed", x.retryMaxElapsed),
	)
}
