package inventory

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
)

// Column orders match the files the planning team already consumes, so
// the header casing differs between the two exports.
var (
	plaColumns       = []string{"date", "event", "property", "bu", "ALLOCATION", "SUPPLY", "PAGE", "rate", "price_type", "impressions"}
	monetisedColumns = []string{"date", "event", "property", "bu", "rate", "allocation", "supply", "page", "price_type", "impressions"}
)

// WritePLACSV writes PLA rows to outputPath.
func WritePLACSV(rows []Row, outputPath string) error {
	return writeCSV(outputPath, plaColumns, rows, func(r Row) []string {
		return []string{
			r.Date,
			r.Event,
			r.Property,
			r.BU,
			strconv.FormatInt(r.Allocation, 10),
			strconv.FormatInt(r.Supply, 10),
			r.Page,
			formatRate(r.Rate),
			r.PriceType,
			strconv.Itoa(r.Impressions),
		}
	})
}

// WriteMonetisedCSV writes monetised rows to outputPath.
func WriteMonetisedCSV(rows []Row, outputPath string) error {
	return writeCSV(outputPath, monetisedColumns, rows, func(r Row) []string {
		return []string{
			r.Date,
			r.Event,
			r.Property,
			r.BU,
			formatRate(r.Rate),
			strconv.FormatInt(r.Allocation, 10),
			strconv.FormatInt(r.Supply, 10),
			r.Page,
			r.PriceType,
			strconv.Itoa(r.Impressions),
		}
	})
}

func writeCSV(path string, header []string, rows []Row, record func(Row) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "inventory: create output file %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "inventory: write header")
	}
	for _, r := range rows {
		if err := w.Write(record(r)); err != nil {
			return eris.Wrap(err, "inventory: write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "inventory: flush output")
	}
	return nil
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
