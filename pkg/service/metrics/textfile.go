// Package metrics exports a report in the Prometheus text format so that
// node_exporter's textfile collector can pick it up.
package metrics

import (
	"context"
	"io"

	"github.com/m-mizutani/goerr/v2"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/secmon-lab/salesday/pkg/domain/interfaces"
	"github.com/secmon-lab/salesday/pkg/domain/model"
	"github.com/secmon-lab/salesday/pkg/domain/types"
	"github.com/secmon-lab/salesday/pkg/utils/atomicfile"
	"google.golang.org/protobuf/proto"
)

const namespace = "salesday"

// Textfile writes report metrics to a .prom file
type Textfile struct {
	path string
}

var _ interfaces.Publisher = (*Textfile)(nil)

// NewTextfile creates a publisher writing to path
func NewTextfile(path string) *Textfile {
	return &Textfile{path: path}
}

// Name implements interfaces.Publisher
func (t *Textfile) Name() string {
	return "metrics"
}

// Publish replaces the metrics file with the report values
func (t *Textfile) Publish(ctx context.Context, report *model.Report) error {
	err := atomicfile.Write(t.path, func(w io.Writer) error {
		return Encode(w, report)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to write metrics file", goerr.V("path", t.path))
	}
	return nil
}

// Encode writes the metric families of report in text exposition format
func Encode(w io.Writer, report *model.Report) error {
	for _, mf := range Families(report) {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return goerr.Wrap(err, "failed to encode metric family", goerr.V("name", mf.GetName()))
		}
	}
	return nil
}

// Families converts a report into gauge metric families
func Families(report *model.Report) []*dto.MetricFamily {
	return []*dto.MetricFamily{
		gauge("days_analyzed", "Number of distinct days with at least one order.",
			sample(float64(len(report.Days)))),
		gauge("unusual_days", "Number of days outside the IQR fences.",
			sample(float64(report.CountByDirection(types.DirectionHigh)), "direction", types.DirectionHigh.String()),
			sample(float64(report.CountByDirection(types.DirectionLow)), "direction", types.DirectionLow.String())),
		gauge("quartile", "First and third quartile of daily order counts.",
			sample(report.Stats.Q1, "quartile", "q1"),
			sample(report.Stats.Q3, "quartile", "q3")),
		gauge("fence", "Lower and upper IQR fence of daily order counts.",
			sample(report.Stats.Lower, "bound", "lower"),
			sample(report.Stats.Upper, "bound", "upper")),
		gauge("last_run_timestamp_seconds", "Unix time the report was generated.",
			sample(float64(report.GeneratedAt.Unix()))),
	}
}

func gauge(name, help string, metrics ...*dto.Metric) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(namespace + "_" + name),
		Help:   proto.String(help),
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: metrics,
	}
}

// sample builds a gauge sample; labels are name/value pairs
func sample(value float64, labels ...string) *dto.Metric {
	m := &dto.Metric{
		Gauge: &dto.Gauge{Value: proto.Float64(value)},
	}
	for i := 0; i+1 < len(labels); i += 2 {
		m.Label = append(m.Label, &dto.LabelPair{
			Name:  proto.String(labels[i]),
			Value: proto.String(labels[i+1]),
		})
	}
	return m
}
