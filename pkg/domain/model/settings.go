package model

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/types"
)

// MigrationSettings is the live configuration of the migration workers. It is resolved again on
// every invocation, so a changed value takes effect without restarting the process.
type MigrationSettings struct {
	Enabled            bool
	Capacity           int
	MaxTagsCount       int
	EnqueueWaitingTime time.Duration
	PreImportTimeout   time.Duration
	ImportTimeout      time.Duration
	MaxStepDuration    time.Duration
	MaxRetries         int
	PreImportTagsRate  float64
	StartMaxRetries    int
	CreatedBefore      time.Time
}

func DefaultMigrationSettings() MigrationSettings {
	return MigrationSettings{
		Enabled:            false,
		Capacity:           1,
		MaxTagsCount:       100,
		EnqueueWaitingTime: 45 * time.Minute,
		PreImportTimeout:   30 * time.Minute,
		ImportTimeout:      10 * time.Minute,
		MaxStepDuration:    5 * time.Minute,
		MaxRetries:         3,
		PreImportTagsRate:  0.5,
		StartMaxRetries:    50,
	}
}

func (x *MigrationSettings) Validate() error {
	checks := []struct {
		name     string
		negative bool
	}{
		{"capacity", x.Capacity < 0},
		{"max_tags_count", x.MaxTagsCount < 0},
		{"enqueue_waiting_time", x.EnqueueWaitingTime < 0},
		{"pre_import_timeout", x.PreImportTimeout < 0},
		{"import_timeout", x.ImportTimeout < 0},
		{"max_step_duration", x.MaxStepDuration < 0},
		{"max_retries", x.MaxRetries < 0},
		{"pre_import_tags_rate", x.PreImportTagsRate < 0},
		{"start_max_retries", x.StartMaxRetries < 0},
	}
	for _, c := range checks {
		if c.negative {
			return goerr.Wrap(types.ErrInvalidOption, "migration setting must not be negative", goerr.V("name", c.name))
		}
	}
	return nil
}

// DynamicPreImportTimeoutFor scales the pre-import timeout with the repository size.
func (x *MigrationSettings) DynamicPreImportTimeoutFor(tagsCount int) time.Duration {
	return time.Duration(float64(tagsCount) * x.PreImportTagsRate * float64(time.Second))
}

func (x MigrationSettings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", x.Enabled),
		slog.Int("capacity", x.Capacity),
		slog.Int("max_tags_count", x.MaxTagsCount),
		slog.Duration("enqueue_waiting_time", x.EnqueueWaitingTime),
		slog.Duration("pre_import_timeout", x.PreImportTimeout),
		slog.Duration("import_timeout", x.ImportTimeout),
		slog.Duration("max_step_duration", x.MaxStepDuration),
		slog.Int("max_retries", x.MaxRetries),
		slog.Float64("pre_import_tags_rate", x.PreImportTagsRate),
		slog.Int("start_max_retries", x.StartMaxRetries),
		slog.Time("created_before", x.CreatedBefore),
	)
}
