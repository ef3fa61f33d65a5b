package cli

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/m-mizutani/regmig/pkg/controller/scheduler"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func batchCommand() *cli.Command {
	var (
		paths           []string
		timeoutStrategy string
		pollInterval    time.Duration
		cfg             appConfig
	)

	return &cli.Command{
		Name:    "batch",
		Aliases: []string{"b"},
		Usage:   "Migrate the given repositories through both stages and wait until the batch ends",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringSliceFlag{
				Name:        "path",
				Aliases:     []string{"p"},
				Usage:       "Repository path to migrate (repeatable)",
				Destination: &paths,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "timeout-strategy",
				Usage:       "What a stalled stage does on timeout [optimistic|pessimistic]",
				Value:       string(types.TimeoutStrategyOptimistic),
				Destination: &timeoutStrategy,
			},
			&cli.DurationFlag{
				Name:        "poll-interval",
				Usage:       "Interval to check the batch status",
				Value:       10 * time.Second,
				Destination: &pollInterval,
			},
		}, cfg.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			input := &model.StartBatchImportInput{
				TimeoutStrategy: types.TimeoutStrategy(timeoutStrategy),
			}
			for _, p := range paths {
				input.Paths = append(input.Paths, types.RepositoryPath(p))
			}

			logging.Default().Info("starting batch",
				slog.Any("Paths", paths),
				slog.String("TimeoutStrategy", timeoutStrategy),
				slog.Any("Config", &cfg),
			)

			sched := scheduler.New(scheduler.WithBaseContext(ctx))
			defer sched.Stop()

			a, err := cfg.build(ctx, sched)
			if err != nil {
				return err
			}
			defer a.Close()

			batch, err := a.uc.StartBatchImport(ctx, input)
			if err != nil {
				return err
			}

			batch, err = waitBatch(ctx, batch.ID, pollInterval, a.uc.GetBatchImport)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(batch); err != nil {
				return goerr.Wrap(err, "failed to write batch")
			}

			if batch.Status == types.BatchStatusFailed {
				return goerr.New("batch import failed", goerr.V("id", batch.ID), goerr.V("error", batch.Error))
			}
			return nil
		},
	}
}

// waitBatch polls the batch until it leaves the enqueued statuses.
func waitBatch(ctx context.Context, id types.BatchImportID, interval time.Duration, get func(context.Context, types.BatchImportID) (*model.BatchImport, error)) (*model.BatchImport, error) {
	for {
		batch, err := get(ctx, id)
		if err != nil {
			return nil, err
		}
		if !batch.Status.Enqueued() {
			return batch, nil
		}

		logging.From(ctx).Info("waiting batch import",
			slog.String("id", id.String()),
			slog.String("stage", string(batch.Stage)),
			slog.Int("succeeded", len(batch.Succeeded)),
			slog.Int("failed", len(batch.Failed)),
		)

		if err := logging.Sleep(ctx, interval); err != nil {
			return nil, goerr.Wrap(err, "interrupted while waiting batch import", goerr.V("id", id))
		}
	}
}
