package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/m-mizutani/regmig/pkg/controller/scheduler"
	"github.com/m-mizutani/regmig/pkg/controller/server"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
	"golang.org/x/sync/errgroup"

	"github.com/urfave/cli/v3"

	_ "github.com/lib/pq"
)

func serveCommand() *cli.Command {
	var (
		addr             string
		disableScheduler bool
		cfg              appConfig
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("REGMIG_ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "disable-scheduler",
			Usage:       "Do not run workers periodically. Use this when an external scheduler calls POST /workers/{name}",
			Sources:     cli.EnvVars("REGMIG_DISABLE_SCHEDULER"),
			Destination: &disableScheduler,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode",
		Flags:   slice.Flatten(serveFlags, cfg.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Bool("DisableScheduler", disableScheduler),
				slog.Any("Config", &cfg),
			)

			sched := scheduler.New(scheduler.WithBaseContext(ctx))
			defer sched.Stop()

			a, err := cfg.build(ctx, sched)
			if err != nil {
				return err
			}
			defer a.Close()

			if !disableScheduler {
				sched.Start(scheduler.WorkerJobs(a.uc)...)
			}

			var options []server.Option
			if secret := cfg.registry.NotificationSecret(); secret != "" {
				options = append(options, server.WithNotificationSecret(secret))
			}
			if a.metricsHandler != nil {
				options = append(options, server.WithMetricsHandler(a.metricsHandler))
			}
			s := server.New(a.uc, options...)

			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				// a synchronous worker run may take as long as the enqueuer deadline
				WriteTimeout: 5 * time.Minute,
			}

			sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, egCtx := errgroup.WithContext(sigCtx)
			eg.Go(func() error {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to listen and serve")
				}
				return nil
			})
			eg.Go(func() error {
				<-egCtx.Done()
				logging.Default().Info("shutting down server")

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
				return nil
			})

			return eg.Wait()
		},
	}
}
