package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/salesday/pkg/domain/model"
	"github.com/secmon-lab/salesday/pkg/utils/atomicfile"
)

// DefaultPath is where the unusual days are written unless configured otherwise
const DefaultPath = "dates_unusual_sales.csv"

// Header is the first row of the CSV
var Header = []string{"date", "order_count", "direction"}

// Encode writes the header and one row per unusual day to w
func Encode(w io.Writer, days []model.UnusualDay) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return goerr.Wrap(err, "failed to write CSV header")
	}
	for _, day := range days {
		row := []string{
			day.Date.String(),
			strconv.FormatInt(day.Count, 10),
			day.Direction.String(),
		}
		if err := cw.Write(row); err != nil {
			return goerr.Wrap(err, "failed to write CSV row", goerr.V("date", day.Date.String()))
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush CSV")
	}
	return nil
}

// WriteFile replaces the file at path with the CSV of days
func WriteFile(path string, days []model.UnusualDay) error {
	err := atomicfile.Write(path, func(w io.Writer) error {
		return Encode(w, days)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to write unusual days",
			goerr.V("path", path),
			goerr.T(model.ErrTagWrite))
	}
	return nil
}
