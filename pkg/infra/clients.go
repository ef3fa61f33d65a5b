package infra

import (
	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/infra/feature"
	"github.com/m-mizutani/regmig/pkg/infra/jobs"
	"github.com/m-mizutani/regmig/pkg/infra/lease"
	"github.com/m-mizutani/regmig/pkg/infra/metrics"
	"github.com/m-mizutani/regmig/pkg/infra/settings"
)

// Clients bundles the external dependencies of the use cases. Everything except the registry
// and the repository store has an in-process default.
type Clients struct {
	registry   interfaces.RegistryClient
	repository interfaces.RepositoryStore
	lease      interfaces.ExclusiveLease
	features   interfaces.FeatureFlags
	settings   interfaces.SettingsProvider
	metrics    interfaces.Metrics
	waiter     interfaces.JobWaiter
	tracker    interfaces.JobTracker
	bqClient   interfaces.BigQuery
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	var noMetrics *metrics.Metrics
	client := &Clients{
		lease:    lease.NewMemory(),
		features: feature.NewStatic(),
		settings: settings.NewStatic(model.DefaultMigrationSettings()),
		metrics:  noMetrics,
		waiter:   jobs.NewWaiter(),
		tracker:  jobs.NewTracker(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) Registry() interfaces.RegistryClient {
	return x.registry
}
func (x *Clients) RepositoryStore() interfaces.RepositoryStore {
	return x.repository
}
func (x *Clients) ExclusiveLease() interfaces.ExclusiveLease {
	return x.lease
}
func (x *Clients) FeatureFlags() interfaces.FeatureFlags {
	return x.features
}
func (x *Clients) Settings() interfaces.SettingsProvider {
	return x.settings
}
func (x *Clients) Metrics() interfaces.Metrics {
	return x.metrics
}
func (x *Clients) JobWaiter() interfaces.JobWaiter {
	return x.waiter
}
func (x *Clients) JobTracker() interfaces.JobTracker {
	return x.tracker
}

// BigQuery returns nil when no snapshot table is configured.
func (x *Clients) BigQuery() interfaces.BigQuery {
	return x.bqClient
}

func WithRegistry(client interfaces.RegistryClient) Option {
	return func(x *Clients) {
		x.registry = client
	}
}

func WithRepositoryStore(repo interfaces.RepositoryStore) Option {
	return func(x *Clients) {
		x.repository = repo
	}
}

func WithExclusiveLease(l interfaces.ExclusiveLease) Option {
	return func(x *Clients) {
		x.lease = l
	}
}

func WithFeatureFlags(flags interfaces.FeatureFlags) Option {
	return func(x *Clients) {
		x.features = flags
	}
}

func WithSettings(provider interfaces.SettingsProvider) Option {
	return func(x *Clients) {
		x.settings = provider
	}
}

func WithMetrics(m interfaces.Metrics) Option {
	return func(x *Clients) {
		x.metrics = m
	}
}

func WithJobWaiter(w interfaces.JobWaiter) Option {
	return func(x *Clients) {
		x.waiter = w
	}
}

func WithJobTracker(t interfaces.JobTracker) Option {
	return func(x *Clients) {
		x.tracker = t
	}
}

func WithBigQuery(client interfaces.BigQuery) Option {
	return func(x *Clients) {
		x.bqClient = client
	}
}
