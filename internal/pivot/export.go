package pivot

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
)

// outputColumns is the fixed output column order.
var outputColumns = []string{
	"date",
	"event",
	"property",
	"impressions",
	"bu",
	"allocation",
	"price_type",
	"rate",
	"supply",
	"page",
}

// WriteCSV writes the long-format rows to a comma-separated file with a
// header row, overwriting any existing file.
func WriteCSV(rows []Row, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "pivot export: create file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(outputColumns); err != nil {
		return eris.Wrap(err, "pivot export: write header")
	}

	for _, r := range rows {
		record := []string{
			r.Date,
			r.Event,
			r.Property,
			strconv.Itoa(r.Impressions),
			r.BusinessUnit,
			formatNumber(r.Allocation),
			r.PriceType,
			r.Rate,
			formatNumber(r.Supply),
			r.Page,
		}
		if err := w.Write(record); err != nil {
			return eris.Wrap(err, "pivot export: write row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "pivot export: flush")
	}

	return nil
}

// formatNumber renders a value with the fewest digits that round-trip,
// so whole allocations come out as "3" rather than "3.000000".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
