package usecase_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/salesday/pkg/domain/model"
	"github.com/secmon-lab/salesday/pkg/domain/types"
	"github.com/secmon-lab/salesday/pkg/repository"
	"github.com/secmon-lab/salesday/pkg/usecase"
)

func seedOptions() usecase.SeedOptions {
	return usecase.SeedOptions{
		Start:  model.NewDate(2011, time.May, 31),
		Days:   60,
		Mean:   50,
		Spikes: 4,
		Seed:   42,
	}
}

func TestSeedOptionsValidate(t *testing.T) {
	gt.NoError(t, seedOptions().Validate())

	for name, mutate := range map[string]func(o *usecase.SeedOptions){
		"missing start":         func(o *usecase.SeedOptions) { o.Start = model.Date{} },
		"zero days":             func(o *usecase.SeedOptions) { o.Days = 0 },
		"zero mean":             func(o *usecase.SeedOptions) { o.Mean = 0 },
		"more spikes than days": func(o *usecase.SeedOptions) { o.Spikes = 61 },
		"negative spikes":       func(o *usecase.SeedOptions) { o.Spikes = -1 },
	} {
		t.Run(name, func(t *testing.T) {
			opts := seedOptions()
			mutate(&opts)
			err := opts.Validate()
			gt.Error(t, err)
			gt.True(t, goerr.HasTag(err, model.ErrTagConfig))
		})
	}
}

func TestGenerateOrders(t *testing.T) {
	t.Run("deterministic for a seed", func(t *testing.T) {
		a := usecase.GenerateOrders(seedOptions())
		b := usecase.GenerateOrders(seedOptions())
		gt.Equal(t, a, b)
	})

	t.Run("every day inside the range has orders", func(t *testing.T) {
		opts := seedOptions()
		last := opts.Start.AddDays(opts.Days)
		seen := map[model.Date]bool{}
		for _, o := range usecase.GenerateOrders(opts) {
			d := model.DateOf(o)
			gt.False(t, d.Before(opts.Start))
			gt.True(t, d.Before(last))
			seen[d] = true
		}
		gt.Equal(t, len(seen), opts.Days)
	})
}

func TestSeedThenDetect(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	opts := seedOptions()
	n, err := usecase.Seed(ctx, repo, opts)
	gt.NoError(t, err).Required()
	gt.True(t, n > 0)

	result, err := usecase.NewDetect(repo,
		usecase.WithOutputPath(filepath.Join(t.TempDir(), "out.csv")),
	).Run(ctx)
	gt.NoError(t, err).Required()
	gt.Equal(t, len(result.Days), opts.Days)

	flagged := map[model.Date]types.Direction{}
	for _, u := range result.Unusual {
		flagged[u.Date] = u.Direction
	}

	spikes := 0
	for _, d := range result.Days {
		switch d.Count {
		case 200:
			spikes++
			gt.Equal(t, flagged[d.Date], types.DirectionHigh)
		case 5:
			spikes++
			gt.Equal(t, flagged[d.Date], types.DirectionLow)
		}
	}
	gt.Equal(t, spikes, opts.Spikes)
}
