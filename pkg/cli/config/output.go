package config

import (
	"log/slog"
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/salesday/pkg/domain/model"
	"github.com/secmon-lab/salesday/pkg/service/metrics"
	"github.com/secmon-lab/salesday/pkg/service/report"
	"github.com/urfave/cli/v3"
)

// Output holds detection and output configuration
type Output struct {
	Path        string
	Fence       float64
	MetricsFile string
}

// Flags returns CLI flags for Output configuration
func (o *Output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "CSV file receiving the unusual days, replaced on every run",
			Category:    "Output",
			Value:       report.DefaultPath,
			Sources:     cli.EnvVars("SALESDAY_OUTPUT"),
			Destination: &o.Path,
		},
		&cli.FloatFlag{
			Name:        "fence",
			Usage:       "IQR multiplier of the fences",
			Category:    "Output",
			Value:       model.DefaultFence,
			Sources:     cli.EnvVars("SALESDAY_FENCE"),
			Destination: &o.Fence,
		},
		&cli.StringFlag{
			Name:        "metrics-file",
			Usage:       "Write Prometheus textfile metrics to this path",
			Category:    "Output",
			Sources:     cli.EnvVars("SALESDAY_METRICS_FILE"),
			Destination: &o.MetricsFile,
		},
	}
}

// Validate validates the output configuration
func (o *Output) Validate() error {
	if o.Path == "" {
		return goerr.New("output path is required", goerr.T(model.ErrTagConfig))
	}
	if math.IsNaN(o.Fence) || math.IsInf(o.Fence, 0) || o.Fence < 0 {
		return goerr.New("fence must be a finite non-negative number",
			goerr.V("fence", o.Fence),
			goerr.T(model.ErrTagConfig))
	}
	return nil
}

// ConfigureMetrics returns the textfile publisher, nil if not configured
func (o *Output) ConfigureMetrics() *metrics.Textfile {
	if o.MetricsFile == "" {
		return nil
	}
	return metrics.NewTextfile(o.MetricsFile)
}

// LogValue returns structured log value
func (o Output) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", o.Path),
		slog.Float64("fence", o.Fence),
		slog.String("metrics_file", o.MetricsFile),
	)
}
