package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/infra/settings"
	"github.com/urfave/cli/v3"
)

// Migration holds the migration settings given on the command line. When a settings file is
// given, its values override the flags and are read again on every worker run.
type Migration struct {
	enabled            bool
	capacity           int64
	maxTagsCount       int64
	enqueueWaitingTime time.Duration
	preImportTimeout   time.Duration
	importTimeout      time.Duration
	maxStepDuration    time.Duration
	maxRetries         int64
	preImportTagsRate  float64
	startMaxRetries    int64
	createdBefore      string
	settingsFile       string
	production         bool
}

func (x *Migration) Flags() []cli.Flag {
	defaults := model.DefaultMigrationSettings()

	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "migration-enabled",
			Usage:       "Enable the migration workers",
			Category:    "Migration",
			Destination: &x.enabled,
			Sources:     cli.EnvVars("REGMIG_MIGRATION_ENABLED"),
		},
		&cli.Int64Flag{
			Name:        "migration-capacity",
			Usage:       "Maximum number of repositories migrating at the same time",
			Category:    "Migration",
			Destination: &x.capacity,
			Value:       int64(defaults.Capacity),
			Sources:     cli.EnvVars("REGMIG_MIGRATION_CAPACITY"),
		},
		&cli.Int64Flag{
			Name:        "migration-max-tags-count",
			Usage:       "Repositories with more tags are skipped. Zero means no limit",
			Category:    "Migration",
			Destination: &x.maxTagsCount,
			Value:       int64(defaults.MaxTagsCount),
			Sources:     cli.EnvVars("REGMIG_MIGRATION_MAX_TAGS_COUNT"),
		},
		&cli.DurationFlag{
			Name:        "migration-enqueue-waiting-time",
			Usage:       "Minimum delay between two completed migration steps",
			Category:    "Migration",
			Destination: &x.enqueueWaitingTime,
			Value:       defaults.EnqueueWaitingTime,
			Sources:     cli.EnvVars("REGMIG_MIGRATION_ENQUEUE_WAITING_TIME"),
		},
		&cli.DurationFlag{
			Name:        "migration-pre-import-timeout",
			Usage:       "Timeout of the pre-import stage",
			Category:    "Migration",
			Destination: &x.preImportTimeout,
			Value:       defaults.PreImportTimeout,
			Sources:     cli.EnvVars("REGMIG_MIGRATION_PRE_IMPORT_TIMEOUT"),
		},
		&cli.DurationFlag{
			Name:        "migration-import-timeout",
			Usage:       "Timeout of the import stage",
			Category:    "Migration",
			Destination: &x.importTimeout,
			Value:       defaults.ImportTimeout,
			Sources:     cli.EnvVars("REGMIG_MIGRATION_IMPORT_TIMEOUT"),
		},
		&cli.DurationFlag{
			Name:        "migration-max-step-duration",
			Usage:       "Stage duration after which the guard checks a repository",
			Category:    "Migration",
			Destination: &x.maxStepDuration,
			Value:       defaults.MaxStepDuration,
			Sources:     cli.EnvVars("REGMIG_MIGRATION_MAX_STEP_DURATION"),
		},
		&cli.Int64Flag{
			Name:        "migration-max-retries",
			Usage:       "Aborts before a repository is skipped",
			Category:    "Migration",
			Destination: &x.maxRetries,
			Value:       int64(defaults.MaxRetries),
			Sources:     cli.EnvVars("REGMIG_MIGRATION_MAX_RETRIES"),
		},
		&cli.Float64Flag{
			Name:        "migration-pre-import-tags-rate",
			Usage:       "Seconds per tag for the dynamic pre-import timeout",
			Category:    "Migration",
			Destination: &x.preImportTagsRate,
			Value:       defaults.PreImportTagsRate,
			Sources:     cli.EnvVars("REGMIG_MIGRATION_PRE_IMPORT_TAGS_RATE"),
		},
		&cli.Int64Flag{
			Name:        "migration-start-max-retries",
			Usage:       "Attempts to start an import while the registry is busy",
			Category:    "Migration",
			Destination: &x.startMaxRetries,
			Value:       int64(defaults.StartMaxRetries),
			Sources:     cli.EnvVars("REGMIG_MIGRATION_START_MAX_RETRIES"),
		},
		&cli.StringFlag{
			Name:        "migration-created-before",
			Usage:       "Only repositories created before this time (RFC3339) are enqueued",
			Category:    "Migration",
			Destination: &x.createdBefore,
			Sources:     cli.EnvVars("REGMIG_MIGRATION_CREATED_BEFORE"),
		},
		&cli.StringFlag{
			Name:        "migration-settings",
			Usage:       "Path to a CUE settings file overriding the migration flags",
			Category:    "Migration",
			Destination: &x.settingsFile,
			Sources:     cli.EnvVars("REGMIG_MIGRATION_SETTINGS"),
		},
		&cli.BoolFlag{
			Name:        "production",
			Usage:       "Run in production. The guard does nothing otherwise",
			Category:    "Migration",
			Destination: &x.production,
			Sources:     cli.EnvVars("REGMIG_PRODUCTION"),
		},
	}
}

func (x *Migration) settings() (model.MigrationSettings, error) {
	s := model.MigrationSettings{
		Enabled:            x.enabled,
		Capacity:           int(x.capacity),
		MaxTagsCount:       int(x.maxTagsCount),
		EnqueueWaitingTime: x.enqueueWaitingTime,
		PreImportTimeout:   x.preImportTimeout,
		ImportTimeout:      x.importTimeout,
		MaxStepDuration:    x.maxStepDuration,
		MaxRetries:         int(x.maxRetries),
		PreImportTagsRate:  x.preImportTagsRate,
		StartMaxRetries:    int(x.startMaxRetries),
	}

	if x.createdBefore != "" {
		t, err := time.Parse(time.RFC3339, x.createdBefore)
		if err != nil {
			return s, goerr.Wrap(types.ErrInvalidOption, "invalid migration-created-before",
				goerr.V("value", x.createdBefore),
				goerr.V("error", err.Error()),
			)
		}
		s.CreatedBefore = t
	}

	return s, nil
}

// NewSettings returns the settings provider. The flags are the base that a settings file
// overrides.
func (x *Migration) NewSettings() (interfaces.SettingsProvider, error) {
	base, err := x.settings()
	if err != nil {
		return nil, err
	}

	if x.settingsFile != "" {
		return settings.NewFile(x.settingsFile, base)
	}

	if err := base.Validate(); err != nil {
		return nil, err
	}
	return settings.NewStatic(base), nil
}

func (x *Migration) Production() bool {
	return x.production
}

func (x *Migration) LogValue() slog.Value {
	base, _ := x.settings()
	return slog.GroupValue(
		slog.Any("settings", base),
		slog.String("settingsFile", x.settingsFile),
		slog.Bool("production", x.production),
	)
}
