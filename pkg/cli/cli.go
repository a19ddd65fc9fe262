package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/salesday/pkg/cli/config"
	"github.com/secmon-lab/salesday/pkg/utils/apperr"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.Default()
	if err := config.LoadEnvFile(config.EnvFilePath()); err != nil {
		apperr.Handle(ctxlog.With(ctx, logger), err)
		return err
	}

	var loggerCfg config.Logger

	app := &cli.Command{
		Name:    "salesday",
		Usage:   "Find days with unusually high or low order counts",
		Version: "0.1.0",
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			configured, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}

			logger = configured
			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdDetect(),
			cmdSeed(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		apperr.Handle(ctxlog.With(ctx, logger), err)
		return goerr.Wrap(err, "CLI execution failed")
	}

	return nil
}
