package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/salesday/pkg/cli/config"
	"github.com/secmon-lab/salesday/pkg/domain/interfaces"
	"github.com/secmon-lab/salesday/pkg/repository"
	"github.com/secmon-lab/salesday/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdDetect() *cli.Command {
	var (
		dbCfg     config.Database
		outputCfg config.Output
		slackCfg  config.Slack
		s3Cfg     config.S3
	)

	flags := joinFlags(
		dbCfg.Flags(),
		outputCfg.Flags(),
		slackCfg.Flags(),
		s3Cfg.Flags(),
	)

	return &cli.Command{
		Name:  "detect",
		Usage: "Write the days with unusual order counts to a CSV file",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := outputCfg.Validate(); err != nil {
				return err
			}

			publishers, err := configurePublishers(ctx, &outputCfg, &slackCfg, &s3Cfg)
			if err != nil {
				return err
			}

			logger.Info("Starting detection",
				slog.Any("database", dbCfg),
				slog.Any("output", outputCfg),
				slog.Any("slack", slackCfg),
				slog.Any("s3", s3Cfg),
			)

			return withRepository(ctx, &dbCfg, func(repo *repository.SQL) error {
				uc := usecase.NewDetect(repo,
					usecase.WithFence(outputCfg.Fence),
					usecase.WithOutputPath(outputCfg.Path),
					usecase.WithPublishers(publishers...),
				)

				report, err := uc.Run(ctx)
				if err != nil {
					return err
				}

				logger.Info("Detection complete",
					"run_id", report.RunID.String(),
					"days", len(report.Days),
					"unusual", len(report.Unusual),
					"output", report.OutputPath,
				)
				return nil
			})
		},
	}
}

// configurePublishers builds the optional publishers in a fixed order
func configurePublishers(ctx context.Context, outputCfg *config.Output, slackCfg *config.Slack, s3Cfg *config.S3) ([]interfaces.Publisher, error) {
	var publishers []interfaces.Publisher

	if textfile := outputCfg.ConfigureMetrics(); textfile != nil {
		publishers = append(publishers, textfile)
	}

	slackSvc, err := slackCfg.Configure()
	if err != nil {
		return nil, err
	}
	if slackSvc != nil {
		publishers = append(publishers, slackSvc)
	}

	uploader, err := s3Cfg.Configure(ctx)
	if err != nil {
		return nil, err
	}
	if uploader != nil {
		publishers = append(publishers, uploader)
	}

	return publishers, nil
}
