package feature

import (
	"context"

	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/domain/types"
)

// Static is a fixed set of enabled feature flags.
type Static struct {
	enabled map[types.FeatureFlag]struct{}
}

var _ interfaces.FeatureFlags = (*Static)(nil)

func NewStatic(flags ...types.FeatureFlag) *Static {
	enabled := make(map[types.FeatureFlag]struct{}, len(flags))
	for _, f := range flags {
		enabled[f] = struct{}{}
	}
	return &Static{enabled: enabled}
}

func (x *Static) Enabled(ctx context.Context, flag types.FeatureFlag) bool {
	_, ok := x.enabled[flag]
	return ok
}
