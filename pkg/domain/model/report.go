package model

import (
	"time"

	"github.com/secmon-lab/salesday/pkg/domain/types"
)

// Report is the result of one detection run
type Report struct {
	RunID       types.RunID
	GeneratedAt time.Time
	OutputPath  string
	Days        []OrderDayCount
	Stats       Statistics
	Unusual     []UnusualDay
}

// CountByDirection returns how many unusual days fall on the given side
func (r *Report) CountByDirection(d types.Direction) int {
	n := 0
	for _, u := range r.Unusual {
		if u.Direction == d {
			n++
		}
	}
	return n
}

// Period returns the first and last day analyzed. Both are zero when no day was loaded.
func (r *Report) Period() (Date, Date) {
	if len(r.Days) == 0 {
		return Date{}, Date{}
	}
	return r.Days[0].Date, r.Days[len(r.Days)-1].Date
}
