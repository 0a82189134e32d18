// Package target converts a homepage-targeting impression feed (date,
// impressions, event, rate) into fixed-property allocation rows.
package target

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Fixed output fields for every targeting row.
const (
	PropertyName = "HP_TARGETING 1"
	BusinessUnit = "PERSONAL CARE"
	Page         = "HOME"
	PriceType    = "CPM"
)

// supplyPerImpression scales the feed's impressions (in millions) to
// absolute supply units.
const supplyPerImpression = 1_000_000

// outputDateLayout is the DD-MM-YYYY format the downstream sheet expects.
const outputDateLayout = "02-01-2006"

// inputDateLayouts are tried in order when parsing feed dates.
var inputDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"2-Jan-2006",
	"02-Jan-2006",
	"Jan 2, 2006",
	"2006-01-02 15:04:05",
}

// Row is one converted targeting row.
type Row struct {
	Date       string
	Event      string
	Supply     int64
	Allocation int64
	Rate       float64
}

// Stats accumulates verification data across a run.
type Stats struct {
	Processed       int
	Skipped         int
	TotalSupply     int64
	TotalAllocation int64
	// RateImpressions is the running sum of rate × impressions / 1000.
	RateImpressions float64
	Events          []string
	MinDate         time.Time
	MaxDate         time.Time
}

// Process reads the feed at inputPath, writes converted rows to
// outputPath, and returns run statistics. Rows that fail date or number
// parsing are skipped and counted, not fatal.
func Process(inputPath, outputPath string) (*Stats, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return nil, eris.Wrap(err, "target: open input")
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return nil, eris.Wrap(err, "target: create output")
	}
	defer out.Close()

	reader := csv.NewReader(in)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	writer := csv.NewWriter(out)
	defer writer.Flush()

	header := []string{"date", "event", "property", "bu", "page", "price_type", "supply", "allocation", "impressions", "rate"}
	if err := writer.Write(header); err != nil {
		return nil, eris.Wrap(err, "target: write header")
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "target: read input")
	}
	if len(records) < 2 {
		return nil, eris.New("target: input has no data rows")
	}

	stats := &Stats{}
	seen := make(map[string]bool)

	for _, record := range records[1:] {
		row, day, convErr := convertRow(record)
		if convErr != nil {
			zap.L().Warn("target: row skipped", zap.Strings("row", record), zap.Error(convErr))
			stats.Skipped++
			continue
		}

		if err := writer.Write([]string{
			row.Date,
			row.Event,
			PropertyName,
			BusinessUnit,
			Page,
			PriceType,
			strconv.FormatInt(row.Supply, 10),
			strconv.FormatInt(row.Allocation, 10),
			"0",
			strconv.FormatFloat(row.Rate, 'f', -1, 64),
		}); err != nil {
			return nil, eris.Wrap(err, "target: write row")
		}

		stats.Processed++
		stats.TotalSupply += row.Supply
		stats.TotalAllocation += row.Allocation
		stats.RateImpressions += row.Rate * float64(row.Supply) / float64(supplyPerImpression) / 1000
		if !seen[row.Event] {
			seen[row.Event] = true
			stats.Events = append(stats.Events, row.Event)
		}
		if stats.MinDate.IsZero() || day.Before(stats.MinDate) {
			stats.MinDate = day
		}
		if day.After(stats.MaxDate) {
			stats.MaxDate = day
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, eris.Wrap(err, "target: flush output")
	}

	return stats, nil
}

// convertRow maps one feed record (date, impressions, event, rate) to an
// output row.
func convertRow(record []string) (Row, time.Time, error) {
	if len(record) < 4 {
		return Row{}, time.Time{}, eris.Errorf("target: row has %d columns, need 4", len(record))
	}

	day, err := parseDate(record[0])
	if err != nil {
		return Row{}, time.Time{}, err
	}

	impressions, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil {
		return Row{}, time.Time{}, eris.Wrap(err, "target: parse impressions")
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil {
		return Row{}, time.Time{}, eris.Wrap(err, "target: parse rate")
	}

	supply := int64(impressions * supplyPerImpression)

	return Row{
		Date:       day.Format(outputDateLayout),
		Event:      strings.TrimSpace(record[2]),
		Supply:     supply,
		Allocation: supply,
		Rate:       rate,
	}, day, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, eris.Errorf("target: unparseable date %q", s)
}
