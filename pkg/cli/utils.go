package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/salesday/pkg/cli/config"
	"github.com/secmon-lab/salesday/pkg/repository"
	"github.com/urfave/cli/v3"
)

// joinFlags combines multiple flag slices into one
func joinFlags(flags ...[]cli.Flag) []cli.Flag {
	n := 0
	for _, f := range flags {
		n += len(f)
	}

	result := make([]cli.Flag, 0, n)
	for _, f := range flags {
		result = append(result, f...)
	}
	return result
}

// withRepository opens the sales database, runs fn and closes the
// connection on every path. A close failure is only logged.
func withRepository(ctx context.Context, dbCfg *config.Database, fn func(repo *repository.SQL) error) error {
	repo, err := dbCfg.Configure(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(); err != nil {
			ctxlog.From(ctx).Warn("failed to close database", "error", err)
		}
	}()

	return fn(repo)
}
