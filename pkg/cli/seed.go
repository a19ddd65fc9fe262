package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/salesday/pkg/cli/config"
	"github.com/secmon-lab/salesday/pkg/domain/model"
	"github.com/secmon-lab/salesday/pkg/repository"
	"github.com/secmon-lab/salesday/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdSeed() *cli.Command {
	var (
		dbCfg  config.Database
		start  string
		days   int
		mean   float64
		spikes int
		seed   int
	)

	flags := joinFlags(
		dbCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "start",
				Usage:       "First day of the generated history (YYYY-MM-DD)",
				Category:    "Seed",
				Value:       "2011-05-31",
				Destination: &start,
			},
			&cli.IntFlag{
				Name:        "days",
				Usage:       "Number of consecutive days to generate",
				Category:    "Seed",
				Value:       365,
				Destination: &days,
			},
			&cli.FloatFlag{
				Name:        "mean",
				Usage:       "Average orders per day",
				Category:    "Seed",
				Value:       50,
				Destination: &mean,
			},
			&cli.IntFlag{
				Name:        "spikes",
				Usage:       "Number of days with an unusually high or low volume",
				Category:    "Seed",
				Value:       6,
				Destination: &spikes,
			},
			&cli.IntFlag{
				Name:        "seed",
				Usage:       "Random seed, the same seed always produces the same orders",
				Category:    "Seed",
				Value:       1,
				Destination: &seed,
			},
		},
	)

	return &cli.Command{
		Name:  "seed",
		Usage: "Create the orders table and fill it with synthetic orders",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			startDate, err := model.ParseDate(start)
			if err != nil {
				return goerr.Wrap(err, "invalid start date", goerr.V("start", start), goerr.T(model.ErrTagConfig))
			}

			logger.Info("Seeding orders", slog.Any("database", dbCfg))

			opts := usecase.SeedOptions{
				Start:  startDate,
				Days:   days,
				Mean:   mean,
				Spikes: spikes,
				Seed:   uint64(seed),
			}
			return withRepository(ctx, &dbCfg, func(repo *repository.SQL) error {
				_, err := usecase.Seed(ctx, repo, opts)
				return err
			})
		},
	}
}
