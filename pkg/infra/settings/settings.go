// Package settings resolves MigrationSettings. The file provider reads a CUE document on every
// call so that operators can change the settings without restarting the process.
package settings

import (
	"context"
	_ "embed"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
)

//go:embed schema.cue
var schemaCUE []byte

// Static returns the same settings on every call.
type Static struct {
	settings model.MigrationSettings
}

var _ interfaces.SettingsProvider = (*Static)(nil)

func NewStatic(settings model.MigrationSettings) *Static {
	return &Static{settings: settings}
}

func (x *Static) Settings(ctx context.Context) (*model.MigrationSettings, error) {
	s := x.settings
	return &s, nil
}

// overrides is the decoded settings file. Absent fields keep the base value.
type overrides struct {
	Enabled            *bool    `json:"enabled"`
	Capacity           *int     `json:"capacity"`
	MaxTagsCount       *int     `json:"max_tags_count"`
	EnqueueWaitingTime *string  `json:"enqueue_waiting_time"`
	PreImportTimeout   *string  `json:"pre_import_timeout"`
	ImportTimeout      *string  `json:"import_timeout"`
	MaxStepDuration    *string  `json:"max_step_duration"`
	MaxRetries         *int     `json:"max_retries"`
	PreImportTagsRate  *float64 `json:"pre_import_tags_rate"`
	StartMaxRetries    *int     `json:"start_max_retries"`
	CreatedBefore      *string  `json:"created_before"`
}

// File applies a CUE settings file on top of base settings.
type File struct {
	path   string
	base   model.MigrationSettings
	schema cue.Value
	cuectx *cue.Context
}

var _ interfaces.SettingsProvider = (*File)(nil)

func NewFile(path string, base model.MigrationSettings) (*File, error) {
	cuectx := cuecontext.New()
	schema := cuectx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to compile settings schema")
	}

	f := &File{
		path:   path,
		base:   base,
		schema: schema.LookupPath(cue.ParsePath("#Settings")),
		cuectx: cuectx,
	}

	// fail fast on a broken file at startup
	if _, err := f.Settings(context.Background()); err != nil {
		return nil, err
	}
	return f, nil
}

func (x *File) Settings(ctx context.Context) (*model.MigrationSettings, error) {
	raw, err := os.ReadFile(x.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read settings file", goerr.V("path", x.path))
	}

	ov, err := x.decode(raw)
	if err != nil {
		return nil, err
	}

	settings := x.base
	if err := ov.apply(&settings); err != nil {
		return nil, goerr.Wrap(err, "invalid settings file", goerr.V("path", x.path))
	}
	if err := settings.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid settings", goerr.V("path", x.path))
	}
	return &settings, nil
}

func (x *File) decode(raw []byte) (*overrides, error) {
	v := x.cuectx.CompileBytes(raw, cue.Filename(x.path))
	if err := v.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to compile settings file", goerr.V("path", x.path))
	}

	unified := x.schema.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "settings file does not match schema",
			goerr.V("path", x.path),
			goerr.V("error", err.Error()),
		)
	}

	var ov overrides
	if err := unified.Decode(&ov); err != nil {
		return nil, goerr.Wrap(err, "failed to decode settings file", goerr.V("path", x.path))
	}
	return &ov, nil
}

func parseDuration(dst *time.Duration, src *string, name string) error {
	if src == nil {
		return nil
	}
	d, err := time.ParseDuration(*src)
	if err != nil {
		return goerr.Wrap(types.ErrInvalidOption, "invalid duration", goerr.V("name", name), goerr.V("value", *src))
	}
	*dst = d
	return nil
}

func (x *overrides) apply(s *model.MigrationSettings) error {
	if x.Enabled != nil {
		s.Enabled = *x.Enabled
	}
	if x.Capacity != nil {
		s.Capacity = *x.Capacity
	}
	if x.MaxTagsCount != nil {
		s.MaxTagsCount = *x.MaxTagsCount
	}
	if x.MaxRetries != nil {
		s.MaxRetries = *x.MaxRetries
	}
	if x.PreImportTagsRate != nil {
		s.PreImportTagsRate = *x.PreImportTagsRate
	}
	if x.StartMaxRetries != nil {
		s.StartMaxRetries = *x.StartMaxRetries
	}

	durations := []struct {
		dst  *time.Duration
		src  *string
		name string
	}{
		{&s.EnqueueWaitingTime, x.EnqueueWaitingTime, "enqueue_waiting_time"},
		{&s.PreImportTimeout, x.PreImportTimeout, "pre_import_timeout"},
		{&s.ImportTimeout, x.ImportTimeout, "import_timeout"},
		{&s.MaxStepDuration, x.MaxStepDuration, "max_step_duration"},
	}
	for _, d := range durations {
		if err := parseDuration(d.dst, d.src, d.name); err != nil {
			return err
		}
	}

	if x.CreatedBefore != nil {
		t, err := time.Parse(time.RFC3339, *x.CreatedBefore)
		if err != nil {
			return goerr.Wrap(types.ErrInvalidOption, "created_before must be RFC3339", goerr.V("value", *x.CreatedBefore))
		}
		s.CreatedBefore = t
	}
	return nil
}
