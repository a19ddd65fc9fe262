package model

import (
	"log/slog"

	"github.com/secmon-lab/salesday/pkg/domain/types"
)

// DefaultFence is the IQR multiplier of Tukey's inner fences
const DefaultFence = 1.5

// Statistics holds the distribution values the classification is based on
type Statistics struct {
	N     int
	Q1    float64
	Q3    float64
	IQR   float64
	Fence float64
	Lower float64
	Upper float64
}

// Classify returns the direction of count against the fences and whether it is unusual.
// Values on a fence are not unusual.
func (s Statistics) Classify(count int64) (types.Direction, bool) {
	v := float64(count)
	switch {
	case v < s.Lower:
		return types.DirectionLow, true
	case v > s.Upper:
		return types.DirectionHigh, true
	default:
		return "", false
	}
}

// LogValue returns structured log value
func (s Statistics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("n", s.N),
		slog.Float64("q1", s.Q1),
		slog.Float64("q3", s.Q3),
		slog.Float64("iqr", s.IQR),
		slog.Float64("lower", s.Lower),
		slog.Float64("upper", s.Upper),
	)
}

// UnusualDay is a day whose order count lies strictly outside the fences
type UnusualDay struct {
	OrderDayCount
	Direction types.Direction
}
