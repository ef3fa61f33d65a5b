package cli

import (
	"context"

	"github.com/m-mizutani/regmig/pkg/cli/config"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type CLI struct {
}

func New() *CLI {
	return &CLI{}
}

func (x *CLI) Run(argv []string) error {
	var logCfg config.Logging

	app := &cli.Command{
		Name:  "regmig",
		Usage: "Container registry migration workers",
		Flags: logCfg.Flags(),
		Commands: []*cli.Command{
			serveCommand(),
			runCommand(),
			batchCommand(),
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := logCfg.Configure(); err != nil {
				return ctx, err
			}
			return ctx, nil
		},
	}

	if err := app.Run(context.Background(), argv); err != nil {
		logging.Default().Error("fatal error", "error", err)
		return err
	}

	return nil
}
