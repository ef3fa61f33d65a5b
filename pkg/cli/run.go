package cli

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/controller/scheduler"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func runCommand() *cli.Command {
	var cfg appConfig

	return &cli.Command{
		Name:      "run",
		Aliases:   []string{"r"},
		Usage:     "Run a worker once. Use this from an external scheduler",
		ArgsUsage: "enqueuer|guard|observer|stuck-imports",
		Flags:     cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			name := types.WorkerName(c.Args().First())
			if !slices.Contains(types.WorkerNames, name) {
				return goerr.Wrap(types.ErrInvalidOption, "unknown worker",
					goerr.V("worker", name),
					goerr.V("available", types.WorkerNames),
				)
			}

			logging.Default().Info("starting run",
				slog.String("Worker", string(name)),
				slog.Any("Config", &cfg),
			)

			// batch tasks scheduled by the worker are dropped when the process ends
			sched := scheduler.New(scheduler.WithBaseContext(ctx))
			defer sched.Stop()

			a, err := cfg.build(ctx, sched)
			if err != nil {
				return err
			}
			defer a.Close()

			var job scheduler.Job
			for _, j := range scheduler.WorkerJobs(a.uc) {
				if j.Name == name {
					job = j
				}
			}

			report, err := job.Run(ctx)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return goerr.Wrap(err, "failed to write report")
			}
			return nil
		},
	}
}
