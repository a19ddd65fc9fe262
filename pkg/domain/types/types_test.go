package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/salesday/pkg/domain/types"
)

func TestRunID(t *testing.T) {
	t.Run("new IDs are unique", func(t *testing.T) {
		a := types.NewRunID()
		b := types.NewRunID()
		gt.NotEqual(t, a, b)
		gt.Equal(t, len(a.String()), 36)
	})
}

func TestDirection(t *testing.T) {
	gt.True(t, types.DirectionHigh.IsValid())
	gt.True(t, types.DirectionLow.IsValid())
	gt.False(t, types.Direction("sideways").IsValid())
	gt.Equal(t, types.DirectionHigh.String(), "high")
	gt.Equal(t, types.DirectionLow.String(), "low")
}
