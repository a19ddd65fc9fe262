package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/salesday/pkg/domain/interfaces"
	"github.com/secmon-lab/salesday/pkg/domain/model"
	"github.com/secmon-lab/salesday/pkg/domain/types"
	"github.com/secmon-lab/salesday/pkg/service/outlier"
	"github.com/secmon-lab/salesday/pkg/service/report"
	"github.com/secmon-lab/salesday/pkg/utils/apperr"
)

// DetectConfig holds configuration for Detect use case
type DetectConfig struct {
	fence      float64
	outputPath string
	publishers []interfaces.Publisher
	now        func() time.Time
}

// DetectOption is a functional option for configuring Detect
type DetectOption func(*DetectConfig)

// WithFence sets the IQR multiplier of the fences
func WithFence(fence float64) DetectOption {
	return func(c *DetectConfig) {
		c.fence = fence
	}
}

// WithOutputPath sets the CSV destination
func WithOutputPath(path string) DetectOption {
	return func(c *DetectConfig) {
		c.outputPath = path
	}
}

// WithPublishers appends publishers that receive the report after the CSV is written
func WithPublishers(publishers ...interfaces.Publisher) DetectOption {
	return func(c *DetectConfig) {
		c.publishers = append(c.publishers, publishers...)
	}
}

// WithClock replaces the time source, mainly for tests
func WithClock(now func() time.Time) DetectOption {
	return func(c *DetectConfig) {
		c.now = now
	}
}

// Detect loads daily order counts, flags unusual days and writes them out
type Detect struct {
	repo   interfaces.OrderRepository
	config *DetectConfig
}

// NewDetect creates a new Detect use case
func NewDetect(repo interfaces.OrderRepository, opts ...DetectOption) *Detect {
	config := &DetectConfig{
		fence:      model.DefaultFence,
		outputPath: report.DefaultPath,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Detect{
		repo:   repo,
		config: config,
	}
}

// Run executes one detection pass. On a publish failure the returned report is
// still valid because the CSV has already been written.
func (u *Detect) Run(ctx context.Context) (*model.Report, error) {
	if math.IsNaN(u.config.fence) || math.IsInf(u.config.fence, 0) || u.config.fence < 0 {
		return nil, goerr.New("fence must be a finite non-negative number",
			goerr.V("fence", u.config.fence),
			goerr.T(model.ErrTagConfig))
	}

	runID := types.NewRunID()
	logger := ctxlog.From(ctx).With("run_id", runID.String())
	ctx = ctxlog.With(ctx, logger)

	days, err := u.repo.DailyOrderCounts(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load daily order counts")
	}
	if len(days) == 0 {
		logger.Warn("No orders found, output will contain the header only")
	}

	unusual, stats := outlier.Detect(days, u.config.fence)
	logger.Info("Computed order count fences",
		"stats", stats,
		"unusual", len(unusual),
	)

	if err := report.WriteFile(u.config.outputPath, unusual); err != nil {
		return nil, err
	}
	logger.Info("Wrote unusual days", "path", u.config.outputPath, "rows", len(unusual))

	result := &model.Report{
		RunID:       runID,
		GeneratedAt: u.config.now().UTC(),
		OutputPath:  u.config.outputPath,
		Days:        days,
		Stats:       stats,
		Unusual:     unusual,
	}

	var errs []error
	for _, p := range u.config.publishers {
		if err := p.Publish(ctx, result); err != nil {
			err = goerr.Wrap(err, "failed to publish report",
				goerr.V("publisher", p.Name()),
				goerr.T(model.ErrTagPublish))
			apperr.Handle(ctx, err)
			errs = append(errs, err)
			continue
		}
		logger.Info("Published report", "publisher", p.Name())
	}
	if len(errs) > 0 {
		return result, goerr.Wrap(errors.Join(errs...), "one or more publishers failed",
			goerr.V("failed", len(errs)),
			goerr.T(model.ErrTagPublish))
	}

	return result, nil
}
