package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// OrderDayCount is the number of orders placed on one calendar day
type OrderDayCount struct {
	Date  Date
	Count int64
}

// Validate validates the order day count
func (o OrderDayCount) Validate() error {
	if o.Date.IsZero() {
		return goerr.New("order date is required")
	}
	if o.Count < 0 {
		return goerr.New("order count must not be negative",
			goerr.V("date", o.Date.String()),
			goerr.V("count", o.Count))
	}
	return nil
}

// Counts extracts the count values in input order
func Counts(days []OrderDayCount) []float64 {
	values := make([]float64, len(days))
	for i, d := range days {
		values[i] = float64(d.Count)
	}
	return values
}
