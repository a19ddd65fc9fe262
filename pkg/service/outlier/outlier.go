// Package outlier flags days whose order counts fall outside Tukey's fences.
//
// Quartiles use linear interpolation between closest ranks (Hyndman and Fan
// type 7, the NumPy/pandas default): for p in [0, 1] over n sorted values,
// h = (n-1)p and Q(p) = x[floor(h)] + (h-floor(h)) * (x[floor(h)+1] - x[floor(h)]).
// Any non-empty input works. With a single value Q1 = Q3 = that value, so
// nothing is flagged; an empty input yields zero statistics and no outliers.
package outlier

import (
	"math"
	"slices"

	"github.com/secmon-lab/salesday/pkg/domain/model"
)

// Quantile returns the type 7 quantile p of sorted values. sorted must be in
// ascending order. It returns NaN for an empty slice.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	switch {
	case p <= 0:
		return sorted[0]
	case p >= 1:
		return sorted[n-1]
	}

	h := float64(n-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= n {
		return sorted[n-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Compute derives quartiles and fences from the full set of day counts.
// fence is the IQR multiplier, 1.5 for the usual inner fences.
func Compute(days []model.OrderDayCount, fence float64) model.Statistics {
	stats := model.Statistics{N: len(days), Fence: fence}
	if len(days) == 0 {
		return stats
	}

	values := model.Counts(days)
	slices.Sort(values)

	stats.Q1 = Quantile(values, 0.25)
	stats.Q3 = Quantile(values, 0.75)
	stats.IQR = stats.Q3 - stats.Q1
	stats.Lower = stats.Q1 - fence*stats.IQR
	stats.Upper = stats.Q3 + fence*stats.IQR
	return stats
}

// Detect returns the days lying strictly outside the fences, in input order,
// along with the statistics used to classify them.
func Detect(days []model.OrderDayCount, fence float64) ([]model.UnusualDay, model.Statistics) {
	stats := Compute(days, fence)
	unusual := []model.UnusualDay{}
	if stats.N == 0 {
		return unusual, stats
	}

	for _, day := range days {
		if dir, ok := stats.Classify(day.Count); ok {
			unusual = append(unusual, model.UnusualDay{
				OrderDayCount: day,
				Direction:     dir,
			})
		}
	}
	return unusual, stats
}
