package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/salesday/pkg/domain/model"
)

func TestParseDate(t *testing.T) {
	t.Run("plain date", func(t *testing.T) {
		d, err := model.ParseDate("2011-05-31")
		gt.NoError(t, err)
		gt.Equal(t, d, model.NewDate(2011, time.May, 31))
	})

	t.Run("date with time drops the time", func(t *testing.T) {
		d, err := model.ParseDate("2011-05-31 13:45:00")
		gt.NoError(t, err)
		gt.Equal(t, d.String(), "2011-05-31")
	})

	t.Run("RFC3339 keeps the calendar day of its own zone", func(t *testing.T) {
		d, err := model.ParseDate("2011-05-31T23:30:00-05:00")
		gt.NoError(t, err)
		gt.Equal(t, d.String(), "2011-05-31")
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := model.ParseDate("31/05/2011")
		gt.Error(t, err)
	})
}

func TestDateScan(t *testing.T) {
	t.Run("time.Time", func(t *testing.T) {
		var d model.Date
		gt.NoError(t, d.Scan(time.Date(2012, time.February, 29, 18, 0, 0, 0, time.UTC)))
		gt.Equal(t, d.String(), "2012-02-29")
	})

	t.Run("string", func(t *testing.T) {
		var d model.Date
		gt.NoError(t, d.Scan("2013-01-02"))
		gt.Equal(t, d, model.NewDate(2013, time.January, 2))
	})

	t.Run("bytes", func(t *testing.T) {
		var d model.Date
		gt.NoError(t, d.Scan([]byte("2013-01-02")))
		gt.Equal(t, d.String(), "2013-01-02")
	})

	t.Run("NULL is an error", func(t *testing.T) {
		var d model.Date
		gt.Error(t, d.Scan(nil))
	})

	t.Run("unsupported type is an error", func(t *testing.T) {
		var d model.Date
		gt.Error(t, d.Scan(int64(20130102)))
	})
}

func TestDateHelpers(t *testing.T) {
	d := model.NewDate(2014, time.December, 31)
	next := d.AddDays(1)
	gt.Equal(t, next.String(), "2015-01-01")
	gt.True(t, d.Before(next))
	gt.False(t, next.Before(d))
	gt.False(t, d.IsZero())
	gt.True(t, model.Date{}.IsZero())

	v, err := d.Value()
	gt.NoError(t, err)
	gt.Equal(t, v, any("2014-12-31"))
}
