package usecase

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/salesday/pkg/domain/interfaces"
	"github.com/secmon-lab/salesday/pkg/domain/model"
)

// SeedOptions controls the synthetic order history
type SeedOptions struct {
	Start  model.Date
	Days   int
	Mean   float64
	Spikes int
	Seed   uint64
}

// Validate validates the seed options
func (o SeedOptions) Validate() error {
	if o.Start.IsZero() {
		return goerr.New("start date is required", goerr.T(model.ErrTagConfig))
	}
	if o.Days <= 0 {
		return goerr.New("days must be positive", goerr.V("days", o.Days), goerr.T(model.ErrTagConfig))
	}
	if o.Mean <= 0 || math.IsNaN(o.Mean) || math.IsInf(o.Mean, 0) {
		return goerr.New("mean must be a positive number", goerr.V("mean", o.Mean), goerr.T(model.ErrTagConfig))
	}
	if o.Spikes < 0 || o.Spikes > o.Days {
		return goerr.New("spikes must be between 0 and days",
			goerr.V("spikes", o.Spikes),
			goerr.V("days", o.Days),
			goerr.T(model.ErrTagConfig))
	}
	return nil
}

// GenerateOrders returns deterministic order timestamps for opts. Every day gets
// at least one order. Spike days alternate between four times the mean and a
// tenth of it.
func GenerateOrders(opts SeedOptions) []time.Time {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	spikes := make(map[int]int, opts.Spikes)
	for i, day := range rng.Perm(opts.Days)[:opts.Spikes] {
		spikes[day] = i
	}

	var orders []time.Time
	for day := 0; day < opts.Days; day++ {
		volume := opts.Mean + rng.NormFloat64()*math.Sqrt(opts.Mean)
		if i, ok := spikes[day]; ok {
			if i%2 == 0 {
				volume = opts.Mean * 4
			} else {
				volume = opts.Mean / 10
			}
		}
		n := max(1, int(math.Round(volume)))

		base := opts.Start.AddDays(day).Time()
		for j := 0; j < n; j++ {
			orders = append(orders, base.Add(time.Duration(rng.IntN(86400))*time.Second))
		}
	}
	return orders
}

// Seed creates the orders table if needed and fills it with synthetic orders
func Seed(ctx context.Context, seeder interfaces.OrderSeeder, opts SeedOptions) (int, error) {
	if err := opts.Validate(); err != nil {
		return 0, err
	}

	if err := seeder.EnsureSchema(ctx); err != nil {
		return 0, goerr.Wrap(err, "failed to prepare orders table")
	}

	orders := GenerateOrders(opts)
	if err := seeder.InsertOrders(ctx, orders); err != nil {
		return 0, goerr.Wrap(err, "failed to insert orders", goerr.V("count", len(orders)))
	}

	ctxlog.From(ctx).Info("Seeded orders",
		"orders", len(orders),
		"days", opts.Days,
		"start", opts.Start.String(),
	)
	return len(orders), nil
}
