package config

import (
	"log/slog"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/infra/feature"
	"github.com/urfave/cli/v3"
)

var knownFeatureFlags = []types.FeatureFlag{
	types.FeatureDynamicPreImportTimeout,
}

type Feature struct {
	flags []string
}

func (x *Feature) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "feature",
			Usage:       "Enable a feature flag [dynamic_pre_import_timeout]",
			Category:    "Feature",
			Destination: &x.flags,
			Sources:     cli.EnvVars("REGMIG_FEATURE"),
		},
	}
}

func (x *Feature) New() (*feature.Static, error) {
	flags := make([]types.FeatureFlag, 0, len(x.flags))
	for _, f := range x.flags {
		flag := types.FeatureFlag(f)
		if !slices.Contains(knownFeatureFlags, flag) {
			return nil, goerr.Wrap(types.ErrInvalidOption, "unknown feature flag", goerr.V("flag", f))
		}
		flags = append(flags, flag)
	}
	return feature.NewStatic(flags...), nil
}

func (x *Feature) LogValue() slog.Value {
	return slog.GroupValue(slog.Any("enabled", x.flags))
}
